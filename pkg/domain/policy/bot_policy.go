package policy

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	ActionAllow Action = "allow"
	ActionBlock Action = "block"
)

var (
	ErrInvalidAction  = errors.New("invalid action: must be 'allow' or 'block'")
	ErrInvalidBotName = errors.New("bot_name is required")
)

func ParseAction(value string) (Action, error) {
	switch Action(strings.ToLower(strings.TrimSpace(value))) {
	case ActionAllow:
		return ActionAllow, nil
	case ActionBlock:
		return ActionBlock, nil
	default:
		return "", ErrInvalidAction
	}
}

// BotPolicy maps a bot name to an action. A nil UserID marks a global policy
// set by a super admin; tenant policies take precedence over global ones.
type BotPolicy struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    *uuid.UUID `json:"user_id,omitempty" gorm:"type:uuid;index"`
	BotName   string     `json:"bot_name"`
	Action    Action     `json:"action"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func New(userID *uuid.UUID, botName string, action Action) (*BotPolicy, error) {
	botName = strings.TrimSpace(botName)
	if botName == "" {
		return nil, ErrInvalidBotName
	}
	if action != ActionAllow && action != ActionBlock {
		return nil, ErrInvalidAction
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &BotPolicy{
		ID:        id,
		UserID:    userID,
		BotName:   botName,
		Action:    action,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (p BotPolicy) IsGlobal() bool {
	return p.UserID == nil
}

func (BotPolicy) TableName() string {
	return "public.bot_policies"
}
