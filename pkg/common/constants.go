package common

import "time"

const (
	ApiKeyCacheTTL    = 5 * time.Minute
	BotPolicyCacheTTL = 1 * time.Minute
	GeoCacheTTL       = 1 * time.Hour

	ApiKeyPrefix = "abk_"

	// VerificationRecordPrefix is the TXT record value prefix proving domain ownership.
	VerificationRecordPrefix = "aibot-detect="
	VerificationFilePath     = "/.well-known/aibot-detect.txt"

	// IngestionQueueName tags log fields emitted by the ingestion background tasks.
	IngestionQueueName = "ingestion"
)
