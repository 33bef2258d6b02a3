package event

type DeleteApiKeyCacheEvent struct {
	ApiKeyID string `json:"api_key_id"`
	ApiKey   string `json:"api_key"`
}

func (e DeleteApiKeyCacheEvent) Type() string {
	return DeleteApiKeyCacheEventType
}
