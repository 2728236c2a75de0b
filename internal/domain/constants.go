package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Timeout and duration constants
const (
	// DefaultConnectTimeout bounds dialing the inference server. Model
	// generation time must never count against it.
	DefaultConnectTimeout = 5 * time.Second
	// DefaultTotalTimeout bounds the whole response, including the first
	// inference which may load the model.
	DefaultTotalTimeout = 120 * time.Second
)

// Model configuration constants
const (
	// DefaultModelName is used when neither flag nor config pick a model.
	DefaultModelName = "deepseek-coder"
	// DefaultMaxContextChars is the prompt budget for models without an
	// explicit per-model budget.
	DefaultMaxContextChars = 12000
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)
