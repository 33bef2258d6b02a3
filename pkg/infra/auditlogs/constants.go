package auditlogs

const (
	EventTypeUserRegistered = "user.registered"
	EventTypeUserPromoted   = "user.promoted"

	EventTypeDomainCreated  = "domain.created"
	EventTypeDomainVerified = "domain.verified"
	EventTypeDomainDeleted  = "domain.deleted"

	EventTypeAPIKeyCreated = "apikey.created"
	EventTypeAPIKeyDeleted = "apikey.deleted"

	EventTypePolicyUpserted = "policy.upserted"
	EventTypePolicyDeleted  = "policy.deleted"

	EventTypeAlertCreated = "alert.created"
	EventTypeAlertDeleted = "alert.deleted"

	EventTypeBlogCreated = "blog.created"
	EventTypeBlogUpdated = "blog.updated"
	EventTypeBlogDeleted = "blog.deleted"
)

const (
	CategoryAccount       = "account"
	CategoryConfiguration = "configuration"
	CategoryContent       = "content"
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

const (
	TargetTypeUser   = "user"
	TargetTypeDomain = "domain"
	TargetTypeAPIKey = "apikey"
	TargetTypePolicy = "bot_policy"
	TargetTypeAlert  = "alert_rule"
	TargetTypeBlog   = "blog_post"
)
