package event

import "github.com/NeuralTrust/BotTracker/pkg/domain/traffic"

type TrafficLoggedEvent struct {
	Log traffic.Log `json:"log"`
}

func (e TrafficLoggedEvent) Type() string {
	return TrafficLoggedEventType
}
