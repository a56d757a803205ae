package docker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"

	"github.com/gupta-8/code-snippet/internal/executor"
)

// Pool keeps a channel of pre-warmed containers per language, refilled
// by one background manager goroutine per language.
type Pool struct {
	cli       *client.Client
	config    Config
	logger    *slog.Logger
	pools     map[string]chan string
	done      chan struct{}
	wg        sync.WaitGroup
	startDone sync.Once
}

func NewPool(cli *client.Client, cfg Config, logger *slog.Logger) *Pool {
	pools := make(map[string]chan string, len(cfg.Languages))
	for lang := range cfg.Languages {
		pools[lang] = make(chan string, cfg.PoolSize)
	}
	return &Pool{
		cli:    cli,
		config: cfg,
		logger: logger,
		pools:  pools,
		done:   make(chan struct{}),
	}
}

// Start launches the per-language refill managers.
func (p *Pool) Start() {
	p.startDone.Do(func() {
		p.logger.Info("starting container pools",
			slog.Int("poolSize", p.config.PoolSize), slog.Int("languages", len(p.pools)))
		for lang := range p.pools {
			p.wg.Add(1)
			go p.manager(lang)
		}
	})
}

// Stop shuts down the managers and removes all pre-warmed containers.
func (p *Pool) Stop() {
	p.logger.Info("shutting down container pools")
	close(p.done)
	p.wg.Wait()

	for _, pool := range p.pools {
	drain:
		for {
			select {
			case id := <-pool:
				p.removeContainer(id)
			default:
				break drain
			}
		}
	}
}

// GetContainer returns a ready container for the language, blocking
// until one is warm or the context is canceled.
func (p *Pool) GetContainer(ctx context.Context, language string) (string, error) {
	pool, ok := p.pools[language]
	if !ok {
		return "", fmt.Errorf("%w: %s", executor.ErrUnsupportedLanguage, language)
	}
	select {
	case id := <-pool:
		return id, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// manager keeps one language's pool at capacity.
func (p *Pool) manager(language string) {
	defer p.wg.Done()
	pool := p.pools[language]
	spec := p.config.Languages[language]

	for {
		select {
		case <-p.done:
			return
		default:
			if len(pool) < cap(pool) {
				id, err := p.createContainer(spec)
				if err != nil {
					p.logger.Error("failed to create pre-warmed container",
						slog.String("language", language), slog.String("error", err.Error()))
					time.Sleep(1 * time.Second) // backoff on failure
					continue
				}

				select {
				case pool <- id:
				case <-p.done:
					p.removeContainer(id)
					return
				}
			} else {
				time.Sleep(100 * time.Millisecond)
			}
		}
	}
}

// createContainer starts an idle container the exec step will reuse.
func (p *Pool) createContainer(spec LanguageSpec) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hostConfig := &container.HostConfig{
		NetworkMode: "none",
		Resources: container.Resources{
			Memory:   p.config.MemoryLimit,
			NanoCPUs: int64(p.config.CPULimit * 1e9),
		},
		AutoRemove:     false,
		ReadonlyRootfs: true,
	}

	resp, err := p.cli.ContainerCreate(ctx, &container.Config{
		Image:        spec.Image,
		Cmd:          []string{"sleep", "infinity"},
		Tty:          false,
		AttachStdout: false,
		AttachStderr: false,
		User:         "nobody",
	}, hostConfig, nil, nil, "")

	if err != nil {
		return "", fmt.Errorf("ContainerCreate failed: %w", err)
	}

	if err := p.cli.ContainerStart(ctx, resp.ID, container.StartOptions{}); err != nil {
		p.removeContainer(resp.ID)
		return "", fmt.Errorf("ContainerStart failed: %w", err)
	}

	return resp.ID, nil
}

func (p *Pool) removeContainer(id string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_ = p.cli.ContainerRemove(ctx, id, container.RemoveOptions{
		Force: true,
	})
}
