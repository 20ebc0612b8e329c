package errors

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// GeneralInternalServerError represents a generic internal server error.
	GeneralInternalServerError ErrorCode = "general_internal_server_error"
	// GeneralBadRequestError represents a generic bad request error.
	GeneralBadRequestError ErrorCode = "general_bad_request_error"
	// GeneralNotFoundError represents a generic not found error.
	GeneralNotFoundError ErrorCode = "general_not_found_error"
	// GeneralRepositoryError represents a generic repository error.
	GeneralRepositoryError ErrorCode = "general_repository_error"

	// ErrTickValidation represents a tick rejected at the ingest boundary
	// (negative price or size, malformed symbol). Rejected ticks are never stored.
	ErrTickValidation ErrorCode = "tick_validation_error"
	// ErrLateData represents a tick that arrived after its bucket fell outside
	// the configured lookback horizon. Accepted into the tick store, not
	// reflected in OHLCV.
	ErrLateData ErrorCode = "late_data_beyond_horizon"
	// ErrSchedulerTransient represents a transient storage failure during bucket
	// emission. Emission is idempotent and will be retried.
	ErrSchedulerTransient ErrorCode = "scheduler_transient_error"
	// ErrRuleEvaluation represents a missing or stale input during alert rule
	// evaluation. Non-fatal, the rule stays active.
	ErrRuleEvaluation ErrorCode = "rule_evaluation_error"
	// ErrRuleNotFound represents an alert rule id that does not exist.
	ErrRuleNotFound ErrorCode = "rule_not_found"
	// ErrInvalidCondition represents an unsupported alert rule condition.
	ErrInvalidCondition ErrorCode = "invalid_rule_condition"
	// ErrInvalidInterval represents an interval name outside the configured set.
	ErrInvalidInterval ErrorCode = "invalid_interval"

	// RedisConfigError represents an error when the Redis configuration is invalid or nil.
	RedisConfigError ErrorCode = "redis_config_error"
	// RedisConnectionError represents an error when connecting to Redis.
	RedisConnectionError ErrorCode = "redis_connection_error"
	// RedisDisconnectionError represents an error when disconnecting from Redis.
	RedisDisconnectionError ErrorCode = "redis_disconnection_error"
	// RedisPingError represents an error when pinging Redis.
	RedisPingError ErrorCode = "redis_pinging_error"
	// RedisXAddError represents an error when adding entries to a stream in Redis.
	RedisXAddError ErrorCode = "redis_xadd_error"
	// RedisXLenError represents an error when getting the length of a stream in Redis.
	RedisXLenError ErrorCode = "redis_xlen_error"
	// RedisXReadGroupError represents an error when reading from a stream group in Redis.
	RedisXReadGroupError ErrorCode = "redis_xreadgroup_error"
	// RedisXAckError represents an error when acknowledging stream entries in Redis.
	RedisXAckError ErrorCode = "redis_xack_error"
	// RedisXGroupCreateError represents an error when creating a stream consumer group in Redis.
	RedisXGroupCreateError ErrorCode = "redis_xgroupcreate_error"
)
