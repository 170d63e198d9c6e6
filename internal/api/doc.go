// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the client for the remote chat service.
//
// The client performs a single request/response exchange per Send: the
// new message, the selected model identifier, and the prior turn
// history go out; the reply text comes back. There is no retry and no
// streaming. Any failure (connection, non-success status, malformed
// body) surfaces as *NetworkError carrying the service's detail string
// when one is available.
//
// # Usage
//
//	client := api.NewClient(api.DefaultEndpoint)
//	reply, err := client.Send(ctx, "Hello", "gpt-5.2-codex", conv.History())
//	var netErr *api.NetworkError
//	if errors.As(err, &netErr) {
//	    // netErr.Detail is suitable for display
//	}
package api
