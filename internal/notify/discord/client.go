// Package discord delivers decision messages as Discord direct messages
// through the bot REST API.
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
)

// Client is the process-wide Discord bot connection. It is initialized once
// at startup, shared by every delivery, and caches the DM channel opened for
// each recipient — re-opening on demand when the cache goes stale.
type Client struct {
	token   string
	apiBase string
	http    *http.Client

	mu         sync.Mutex
	dmChannels map[string]string
}

func NewClient(token, apiBase string) *Client {
	return &Client{
		token:      token,
		apiBase:    apiBase,
		http:       &http.Client{},
		dmChannels: make(map[string]string),
	}
}

// Close releases the connection state. Safe to call once at shutdown.
func (c *Client) Close() {
	c.mu.Lock()
	c.dmChannels = make(map[string]string)
	c.mu.Unlock()
	c.http.CloseIdleConnections()
}

// SendDM delivers content to the recipient over the cached DM channel,
// opening one if none is cached yet.
func (c *Client) SendDM(ctx context.Context, recipientID, content string) error {
	channelID, err := c.dmChannel(ctx, recipientID, false)
	if err != nil {
		return err
	}
	return c.postMessage(ctx, channelID, content)
}

// SendDMFresh bypasses the channel cache entirely: it opens the DM channel
// anew and posts through it. Used as the fallback path when the cached
// session delivery fails.
func (c *Client) SendDMFresh(ctx context.Context, recipientID, content string) error {
	channelID, err := c.dmChannel(ctx, recipientID, true)
	if err != nil {
		return err
	}
	return c.postMessage(ctx, channelID, content)
}

// InvalidateDM drops the cached channel for a recipient.
func (c *Client) InvalidateDM(recipientID string) {
	c.mu.Lock()
	delete(c.dmChannels, recipientID)
	c.mu.Unlock()
}

func (c *Client) dmChannel(ctx context.Context, recipientID string, fresh bool) (string, error) {
	if !fresh {
		c.mu.Lock()
		cached, ok := c.dmChannels[recipientID]
		c.mu.Unlock()
		if ok {
			return cached, nil
		}
	}

	var resp struct {
		ID string `json:"id"`
	}
	err := c.post(ctx, c.apiBase+"/users/@me/channels", map[string]string{
		"recipient_id": recipientID,
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("open dm channel: %w", err)
	}

	c.mu.Lock()
	c.dmChannels[recipientID] = resp.ID
	c.mu.Unlock()
	return resp.ID, nil
}

func (c *Client) postMessage(ctx context.Context, channelID, content string) error {
	err := c.post(ctx, c.apiBase+"/channels/"+channelID+"/messages", map[string]string{
		"content": content,
	}, nil)
	if err != nil {
		return fmt.Errorf("post message: %w", err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, url string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bot "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("discord api %s: status %d: %s", url, resp.StatusCode, snippet)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode discord response: %w", err)
		}
	}
	return nil
}
