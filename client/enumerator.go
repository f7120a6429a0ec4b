/*************************************************************************
 * Copyright 2026 envygo authors. All rights reserved.
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package client

import (
	"context"
	"time"

	"github.com/binarylogic/envygo/protocol"
)

// enumQueueSize bounds how far the device's item stream can run ahead of
// the collector before backpressure silently drops messages; enumerations
// in practice top out at a few hundred items (options, profiles).
const enumQueueSize = 4096

// enumCollect registers a scoped callback over itemType/endType, sends
// command with waitForAck, and drains items until endType or timeout. The
// callback is always deregistered before returning.
func enumCollect[T any](ctx context.Context, c *Client, command, itemType, endType string, timeout time.Duration, isItem func(protocol.Message) (T, bool), isEnd func(protocol.Message) bool) ([]T, error) {
	queue := make(chan protocol.Message, enumQueueSize)

	token := c.RegisterCallback(func(event string, msg protocol.Message) {
		if event != EventMessage {
			return
		}
		if isEnd(msg) {
			select {
			case queue <- msg:
			default:
			}
			return
		}
		if _, ok := isItem(msg); ok {
			select {
			case queue <- msg:
			default:
			}
		}
	})
	defer c.DeregisterCallback(token)

	start := time.Now()
	if _, err := c.SendRaw(ctx, command, true, 0); err != nil {
		return nil, err
	}

	var items []T
	for {
		timer := time.NewTimer(timeout)
		select {
		case msg := <-queue:
			timer.Stop()
			if isEnd(msg) {
				if c.cfg.Metrics != nil {
					c.cfg.Metrics.ObserveEnumerationDuration(command, time.Since(start))
				}
				return items, nil
			}
			item, _ := isItem(msg)
			items = append(items, item)
		case <-timer.C:
			return items, &EnumerationTimeoutError{
				Command:        command,
				ItemType:       itemType,
				EndType:        endType,
				Timeout:        timeout,
				ItemsCollected: len(items),
			}
		case <-ctx.Done():
			timer.Stop()
			return items, ctx.Err()
		}
	}
}

// EnumProfileGroupsCollect streams ProfileGroup items until the
// ProfileGroupEnd marker.
func (c *Client) EnumProfileGroupsCollect(ctx context.Context, timeout time.Duration) ([]protocol.ProfileGroup, error) {
	return enumCollect(ctx, c, "EnumProfileGroups", "ProfileGroup", "ProfileGroup.", timeout,
		func(m protocol.Message) (protocol.ProfileGroup, bool) { v, ok := m.(protocol.ProfileGroup); return v, ok },
		func(m protocol.Message) bool { _, ok := m.(protocol.ProfileGroupEnd); return ok })
}

// EnumProfilesCollect streams Profile items within group until ProfileEnd.
func (c *Client) EnumProfilesCollect(ctx context.Context, group string, timeout time.Duration) ([]protocol.Profile, error) {
	return enumCollect(ctx, c, protocol.Build("EnumProfiles", group), "Profile", "Profile.", timeout,
		func(m protocol.Message) (protocol.Profile, bool) { v, ok := m.(protocol.Profile); return v, ok },
		func(m protocol.Message) bool { _, ok := m.(protocol.ProfileEnd); return ok })
}

// EnumSettingPagesCollect streams SettingPage items until SettingPageEnd.
func (c *Client) EnumSettingPagesCollect(ctx context.Context, timeout time.Duration) ([]protocol.SettingPage, error) {
	return enumCollect(ctx, c, "EnumSettingPages", "SettingPage", "SettingPage.", timeout,
		func(m protocol.Message) (protocol.SettingPage, bool) { v, ok := m.(protocol.SettingPage); return v, ok },
		func(m protocol.Message) bool { _, ok := m.(protocol.SettingPageEnd); return ok })
}

// EnumConfigPagesCollect streams ConfigPage items until ConfigPageEnd.
func (c *Client) EnumConfigPagesCollect(ctx context.Context, timeout time.Duration) ([]protocol.ConfigPage, error) {
	return enumCollect(ctx, c, "EnumConfigPages", "ConfigPage", "ConfigPage.", timeout,
		func(m protocol.Message) (protocol.ConfigPage, bool) { v, ok := m.(protocol.ConfigPage); return v, ok },
		func(m protocol.Message) bool { _, ok := m.(protocol.ConfigPageEnd); return ok })
}

// EnumOptionsCollect streams Option items under pageOrPath until OptionEnd.
func (c *Client) EnumOptionsCollect(ctx context.Context, pageOrPath string, timeout time.Duration) ([]protocol.Option, error) {
	return enumCollect(ctx, c, protocol.Build("EnumOptions", pageOrPath), "Option", "Option.", timeout,
		func(m protocol.Message) (protocol.Option, bool) { v, ok := m.(protocol.Option); return v, ok },
		func(m protocol.Message) bool { _, ok := m.(protocol.OptionEnd); return ok })
}
