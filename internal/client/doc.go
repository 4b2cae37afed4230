// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the client process runtime.
//
// It wires the local durable store, the backend adapter, the session, the
// connectivity monitor and the sync services into one process lifecycle and
// runs the background workers and the local API until shutdown.
package client
