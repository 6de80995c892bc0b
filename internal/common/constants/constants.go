package constants

import "time"

const (
	UsernameMinLength  = 3
	UsernameMaxLength  = 32
	PasswordMinLength  = 8
	PasswordMaxLength  = 72
	JWTSecretMinLength = 32

	DisplayNameMaxLength = 64
	BioMaxLength         = 500

	PostTitleMaxLength   = 200
	PostContentMaxLength = 100_000
	PostExcerptMaxLength = 500
	PostCategoryMaxLen   = 50
	PostMaxTags          = 10
	PostTagMaxLength     = 30

	AssistContentMaxLength = 20_000
	AssistMaxOutputTokens  = 8192
	DefaultAssistTimeout   = 60 * time.Second
	DefaultAssistModel     = "gpt-5"

	DefaultMaxRequestSize = 1 << 20

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	DefaultHTTPPort       = "8080"
	DefaultRequestTimeout = 5 * time.Second
	DefaultAccessTokenTTL = 24 * time.Hour

	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"
