package rule

import "errors"

var (
	ErrRuleNotConfigured       = errors.New("rule is not configured")
	ErrLatePenaltyTierNotFound = errors.New("late penalty tier not found")
	ErrInvalidRuleConfig       = errors.New("stored rule configuration is invalid")
)
