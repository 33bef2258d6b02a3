package event

import "reflect"

type Event interface {
	Type() string
}

var (
	DeleteApiKeyCacheEventType      = "DeleteApiKeyCacheEvent"
	DeleteBotPoliciesCacheEventType = "DeleteBotPoliciesCacheEvent"
	TrafficLoggedEventType          = "TrafficLoggedEvent"
)

var Registry = map[string]reflect.Type{
	DeleteApiKeyCacheEventType:      reflect.TypeOf(DeleteApiKeyCacheEvent{}),
	DeleteBotPoliciesCacheEventType: reflect.TypeOf(DeleteBotPoliciesCacheEvent{}),
	TrafficLoggedEventType:          reflect.TypeOf(TrafficLoggedEvent{}),
}
