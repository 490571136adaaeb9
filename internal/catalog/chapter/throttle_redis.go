// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package chapter

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/hondana-app/hondana/internal/platform/constants"
)

// # View Dedup Throttle

// ViewThrottle decides whether a viewer's chapter view should be counted.
// Repeat views from the same viewer within the dedup window are suppressed.
type ViewThrottle interface {
	FirstView(context context.Context, viewerKey, chapterID string) (bool, error)
}

// redisThrottle implements [ViewThrottle] on Redis SET NX EX keys.
type redisThrottle struct {
	client *redis.Client
}

// NewRedisThrottle constructs a Redis backed view throttle.
func NewRedisThrottle(client *redis.Client) ViewThrottle {
	return &redisThrottle{client: client}
}

// FirstView atomically claims the viewer/chapter key. The claim is the
// dedup decision itself: SET NX either wins (count the view) or loses
// (already counted within the window). No read-then-write gap.
func (throttle *redisThrottle) FirstView(context context.Context, viewerKey, chapterID string) (bool, error) {
	key := constants.RedisPrefixViewThrottle + chapterID + ":" + viewerKey

	claimed, err := throttle.client.SetNX(context, key, 1, constants.ViewThrottleTTL).Result()
	if err != nil {
		return false, err
	}
	return claimed, nil
}
