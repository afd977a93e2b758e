package ratelimit

import (
	"time"

	"github.com/finsmart/finsmart/internal/config"
	"github.com/finsmart/finsmart/pkg/constants"
)

// RulesFromConfig maps the rate-limit config onto per-class bucket rules.
// Zero or negative values fall back to the shipped defaults.
func RulesFromConfig(cfg *config.RateLimitConfig) map[constants.EndpointClass]Rule {
	return map[constants.EndpointClass]Rule{
		constants.EndpointClassLogin:   ruleFrom(cfg.Login, constants.LoginRateLimitPerMinute),
		constants.EndpointClassDefault: ruleFrom(cfg.Default, constants.DefaultRateLimitPerMinute),
	}
}

func ruleFrom(cfg config.BucketConfig, fallbackCapacity int64) Rule {
	rule := Rule{
		Capacity:       cfg.Capacity,
		RefillAmount:   cfg.RefillAmount,
		RefillInterval: time.Duration(cfg.RefillInterval) * time.Second,
	}
	if rule.Capacity <= 0 {
		rule.Capacity = fallbackCapacity
	}
	if rule.RefillAmount <= 0 {
		rule.RefillAmount = rule.Capacity
	}
	if rule.RefillInterval <= 0 {
		rule.RefillInterval = constants.DefaultRefillInterval
	}
	return rule
}
