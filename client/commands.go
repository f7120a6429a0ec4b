/*************************************************************************
 * Copyright 2026 envygo authors. All rights reserved.
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package client

import (
	"context"

	"github.com/binarylogic/envygo/protocol"
)

// Ack default policy: status mutations wait for ack by default; Heartbeat
// and Bye, sent on a timer/at shutdown, do not.
const (
	waitAck   = true
	noWaitAck = false
)

func (c *Client) cmd(ctx context.Context, wait bool, verb string, args ...protocol.Arg) (protocol.Message, error) {
	return c.Command(ctx, wait, 0, verb, args...)
}

// Heartbeat sends a keepalive; the device does not ack it by convention.
func (c *Client) Heartbeat(ctx context.Context) error {
	_, err := c.cmd(ctx, noWaitAck, "Heartbeat")
	return err
}

// Bye announces a clean disconnect.
func (c *Client) Bye(ctx context.Context) error {
	_, err := c.cmd(ctx, noWaitAck, "Bye")
	return err
}

func (c *Client) PowerOff(ctx context.Context) error {
	_, err := c.cmd(ctx, waitAck, "PowerOff")
	return err
}

func (c *Client) Standby(ctx context.Context) error {
	_, err := c.cmd(ctx, waitAck, "Standby")
	return err
}

func (c *Client) Restart(ctx context.Context) error {
	_, err := c.cmd(ctx, waitAck, "Restart")
	return err
}

func (c *Client) ReloadSoftware(ctx context.Context) error {
	_, err := c.cmd(ctx, waitAck, "ReloadSoftware")
	return err
}

func (c *Client) OpenMenu(ctx context.Context, name string) error {
	_, err := c.cmd(ctx, waitAck, "OpenMenu", name)
	return err
}

func (c *Client) CloseMenu(ctx context.Context) error {
	_, err := c.cmd(ctx, waitAck, "CloseMenu")
	return err
}

func (c *Client) KeyPress(ctx context.Context, button string) error {
	_, err := c.cmd(ctx, waitAck, "KeyPress", button)
	return err
}

func (c *Client) KeyHold(ctx context.Context, button string) error {
	_, err := c.cmd(ctx, waitAck, "KeyHold", button)
	return err
}

func (c *Client) DisplayMessage(ctx context.Context, seconds int, text string) error {
	_, err := c.cmd(ctx, waitAck, "DisplayMessage", seconds, text)
	return err
}

func (c *Client) DisplayAlertWindow(ctx context.Context, text string) error {
	_, err := c.cmd(ctx, waitAck, "DisplayAlertWindow", text)
	return err
}

func (c *Client) CloseAlertWindow(ctx context.Context) error {
	_, err := c.cmd(ctx, waitAck, "CloseAlertWindow")
	return err
}

func (c *Client) DisplayAudioVolume(ctx context.Context, min, cur, max int, unit string) error {
	_, err := c.cmd(ctx, waitAck, "DisplayAudioVolume", min, cur, max, unit)
	return err
}

func (c *Client) SetAspectRatioMode(ctx context.Context, mode string) error {
	_, err := c.cmd(ctx, waitAck, "SetAspectRatioMode", mode)
	return err
}

func (c *Client) GetIncomingSignalInfo(ctx context.Context) (protocol.Message, error) {
	return c.cmd(ctx, waitAck, "GetIncomingSignalInfo")
}

func (c *Client) GetOutgoingSignalInfo(ctx context.Context) (protocol.Message, error) {
	return c.cmd(ctx, waitAck, "GetOutgoingSignalInfo")
}

func (c *Client) GetAspectRatio(ctx context.Context) (protocol.Message, error) {
	return c.cmd(ctx, waitAck, "GetAspectRatio")
}

func (c *Client) GetMaskingRatio(ctx context.Context) (protocol.Message, error) {
	return c.cmd(ctx, waitAck, "GetMaskingRatio")
}

func (c *Client) GetTemperatures(ctx context.Context) (protocol.Message, error) {
	return c.cmd(ctx, waitAck, "GetTemperatures")
}

func (c *Client) GetMacAddress(ctx context.Context) (protocol.Message, error) {
	return c.cmd(ctx, waitAck, "GetMacAddress")
}

func (c *Client) ActivateProfile(ctx context.Context, group string, index int) error {
	_, err := c.cmd(ctx, waitAck, "ActivateProfile", group, index)
	return err
}

func (c *Client) GetActiveProfile(ctx context.Context, group string) (protocol.Message, error) {
	return c.cmd(ctx, waitAck, "GetActiveProfile", group)
}

func (c *Client) QueryOption(ctx context.Context, idOrPath string) (protocol.Message, error) {
	return c.cmd(ctx, waitAck, "QueryOption", idOrPath)
}

// ChangeOption sends a new value for idPath. value is rendered per
// protocol.RenderOptionValue (booleans as YES/NO).
func (c *Client) ChangeOption(ctx context.Context, idPath string, value any) error {
	_, err := c.cmd(ctx, waitAck, "ChangeOption", idPath, protocol.RenderOptionValue(value))
	return err
}

func (c *Client) Toggle(ctx context.Context, optionName string) error {
	_, err := c.cmd(ctx, waitAck, "Toggle", optionName)
	return err
}

func (c *Client) ToneMapOn(ctx context.Context) error {
	_, err := c.cmd(ctx, waitAck, "ToneMapOn")
	return err
}

func (c *Client) ToneMapOff(ctx context.Context) error {
	_, err := c.cmd(ctx, waitAck, "ToneMapOff")
	return err
}

func (c *Client) Hotplug(ctx context.Context) error {
	_, err := c.cmd(ctx, waitAck, "Hotplug")
	return err
}

func (c *Client) RefreshLicenseInfo(ctx context.Context) error {
	_, err := c.cmd(ctx, waitAck, "RefreshLicenseInfo")
	return err
}

func (c *Client) Force1080p60Output(ctx context.Context) error {
	_, err := c.cmd(ctx, waitAck, "Force1080p60Output")
	return err
}

func (c *Client) CreateProfileGroup(ctx context.Context, groupID, name string) error {
	_, err := c.cmd(ctx, waitAck, "CreateProfileGroup", groupID, name)
	return err
}

func (c *Client) RenameProfileGroup(ctx context.Context, groupID, name string) error {
	_, err := c.cmd(ctx, waitAck, "RenameProfileGroup", groupID, name)
	return err
}

func (c *Client) DeleteProfileGroup(ctx context.Context, groupID string) error {
	_, err := c.cmd(ctx, waitAck, "DeleteProfileGroup", groupID)
	return err
}

func (c *Client) CreateProfile(ctx context.Context, group string, index int, name string) error {
	_, err := c.cmd(ctx, waitAck, "CreateProfile", group, index, name)
	return err
}

func (c *Client) RenameProfile(ctx context.Context, group string, index int, name string) error {
	_, err := c.cmd(ctx, waitAck, "RenameProfile", group, index, name)
	return err
}

func (c *Client) DeleteProfile(ctx context.Context, group string, index int) error {
	_, err := c.cmd(ctx, waitAck, "DeleteProfile", group, index)
	return err
}

func (c *Client) AddProfileToPage(ctx context.Context, profileID, pageID string) error {
	_, err := c.cmd(ctx, waitAck, "AddProfileToPage", profileID, pageID)
	return err
}

func (c *Client) RemoveProfileFromPage(ctx context.Context, profileID, pageID string) error {
	_, err := c.cmd(ctx, waitAck, "RemoveProfileFromPage", profileID, pageID)
	return err
}
