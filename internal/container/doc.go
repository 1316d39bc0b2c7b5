// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package container stops QEMU containers through the Docker Engine API.
//
// The container runtime CLI does not forward signals to the container
// reliably when it has no terminal attached. So containers are killed through
// the API instead, identified by the image they run.
package container
