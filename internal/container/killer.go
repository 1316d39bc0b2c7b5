// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package container

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"
	"golang.org/x/sync/errgroup"
)

// KillSignal is sent to matching containers.
const KillSignal = "KILL"

// API is the part of the Docker Engine API client used by the [Killer].
type API interface {
	ContainerList(ctx context.Context, options container.ListOptions) ([]container.Summary, error)
	ContainerKill(ctx context.Context, containerID, signal string) error
}

// Killer kills running containers.
type Killer struct {
	API API
}

// NewKiller creates a [Killer] with a Docker Engine API client configured by
// the environment (DOCKER_HOST etc.).
//
// The returned close function must be called once the [Killer] is not used
// anymore.
func NewKiller() (*Killer, func() error, error) {
	cli, err := client.NewClientWithOpts(
		client.FromEnv,
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("docker client: %w", err)
	}

	return &Killer{API: cli}, cli.Close, nil
}

// KillByAncestor kills all running containers whose image is the given image
// or a descendant of it. It returns the number of killed containers.
//
// Having no matching containers is not an error. All matching containers are
// killed concurrently. If any kill fails, the first error is returned.
func (k *Killer) KillByAncestor(ctx context.Context, image string) (int, error) {
	if image == "" {
		return 0, ErrNoImage
	}

	containers, err := k.API.ContainerList(ctx, container.ListOptions{
		Filters: filters.NewArgs(filters.Arg("ancestor", image)),
	})
	if err != nil {
		return 0, fmt.Errorf("list containers: %w", err)
	}

	if len(containers) == 0 {
		slog.Debug("No running containers", slog.String("ancestor", image))
		return 0, nil
	}

	eg, ctx := errgroup.WithContext(ctx)

	for _, c := range containers {
		eg.Go(func() error {
			slog.Debug("Kill container",
				slog.String("id", c.ID),
				slog.String("image", c.Image),
			)

			err := k.API.ContainerKill(ctx, c.ID, KillSignal)
			if err != nil {
				return fmt.Errorf("kill container %s: %w", c.ID, err)
			}

			return nil
		})
	}

	err = eg.Wait()
	if err != nil {
		return 0, err //nolint:wrapcheck
	}

	return len(containers), nil
}
