package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process-level configuration. Everything comes from the
// environment so main stays lean and deployments stay twelve-factor.
type Server struct {
	Addr          string
	DataDir       string
	JWTSigningKey string

	// ReviewerIDs is the static allow-list of provider ids permitted to
	// review applications.
	ReviewerIDs []string

	// Discord delivery channel. Empty token disables outbound notifications
	// (decisions still commit; delivery is best-effort by contract).
	DiscordBotToken string
	DiscordAPIBase  string

	// RedisURL enables the shared reapply-cooldown store. Empty falls back
	// to the in-process store.
	RedisURL string

	// KafkaBrokers enables the Kafka audit sink. Empty keeps audit events
	// in process memory.
	KafkaBrokers []string
	AuditTopic   string

	// SubmitRateLimit throttles submissions per client IP within
	// SubmitRateWindow. Zero disables the limiter.
	SubmitRateLimit  int
	SubmitRateWindow time.Duration
}

// NotifyTimeout bounds each delivery attempt; a timed-out attempt counts as
// a channel failure.
var NotifyTimeout = 10 * time.Second

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	addr := os.Getenv("GATEHOUSE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	dataDir := os.Getenv("GATEHOUSE_DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	apiBase := os.Getenv("DISCORD_API_BASE")
	if apiBase == "" {
		apiBase = "https://discord.com/api/v10"
	}

	auditTopic := os.Getenv("AUDIT_TOPIC")
	if auditTopic == "" {
		auditTopic = "gatehouse.audit"
	}

	submitLimit := 10
	if raw := os.Getenv("SUBMIT_RATE_LIMIT"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			submitLimit = parsed
		}
	}
	submitWindow := time.Hour
	if raw := os.Getenv("SUBMIT_RATE_WINDOW"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			submitWindow = parsed
		}
	}

	return Server{
		Addr:            addr,
		DataDir:         dataDir,
		JWTSigningKey:   jwtSigningKey,
		ReviewerIDs:     splitList(os.Getenv("REVIEWER_IDS")),
		DiscordBotToken: os.Getenv("DISCORD_BOT_TOKEN"),
		DiscordAPIBase:  apiBase,
		RedisURL:        os.Getenv("REDIS_URL"),
		KafkaBrokers:    splitList(os.Getenv("KAFKA_BROKERS")),
		AuditTopic:      auditTopic,

		SubmitRateLimit:  submitLimit,
		SubmitRateWindow: submitWindow,
	}
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
