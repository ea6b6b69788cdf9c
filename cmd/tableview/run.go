package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/cardroom/tableview/pkg/compose"
	"github.com/cardroom/tableview/pkg/config"
	"github.com/cardroom/tableview/pkg/debugsrv"
	"github.com/cardroom/tableview/pkg/dispatch"
	"github.com/cardroom/tableview/pkg/gameview"
	"github.com/cardroom/tableview/pkg/protocol"
	"github.com/cardroom/tableview/pkg/render"
	"github.com/cardroom/tableview/pkg/session"
	"github.com/cardroom/tableview/pkg/transport"
)

// promptPoll is how often the input loop checks the view for work.
const promptPoll = 150 * time.Millisecond

func runSession(ctx context.Context, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger(cfg.LogLevel)

	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("table", pterm.FgLightGreen.ToStyle()),
		putils.LettersFromStringWithStyle("view", pterm.FgDarkGray.ToStyle()),
	).Render()

	identity := session.New(cfg.Name)
	logger.Info().Int64("session_id", int64(identity.ID)).Str("name", identity.Name).Msg("session identity")

	dialURL, err := identity.DialURL(cfg.ServerURL)
	if err != nil {
		return err
	}
	conn, err := transport.Dial(ctx, dialURL, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	view := gameview.New(identity.ID)
	dispatcher := dispatch.New(view, logger)
	composer := compose.New(view, conn, cfg.ReadyURL, logger).WithRaiseStep(cfg.RaiseStep)

	renderer, err := render.New()
	if err != nil {
		return err
	}
	defer renderer.Stop()

	g, ctx := errgroup.WithContext(ctx)

	// Dispatch loop: strict FIFO, one event fully applied before the next.
	g.Go(func() error {
		for {
			select {
			case raw, ok := <-conn.Messages():
				if !ok {
					// Dropped connection is terminal for the session.
					return conn.Err()
				}
				dispatcher.Handle(raw)
				renderer.Render(view.Snapshot())
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	if !cfg.NoInput {
		g.Go(func() error {
			return inputLoop(ctx, view, composer, logger)
		})
	}

	if cfg.DebugListen != "" {
		dbg := debugsrv.New(view, cfg.DebugListen, logger)
		g.Go(dbg.Start)
		g.Go(func() error {
			<-ctx.Done()
			return dbg.Close()
		})
	}

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// inputLoop watches the view for pending work: a turn prompt to answer or a
// freshly revealed ready control. Everything it sends goes through the
// composer, which enforces the raise bounds.
func inputLoop(ctx context.Context, view *gameview.View, composer *compose.Composer, logger zerolog.Logger) error {
	ticker := time.NewTicker(promptPoll)
	defer ticker.Stop()

	readyAsked := false

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		snap := view.Snapshot()

		if snap.Prompt != nil {
			if err := answerPrompt(ctx, snap.Prompt, composer); err != nil {
				logger.Error().Err(err).Msg("turn response failed")
			}
			continue
		}

		if !snap.ReadyShown {
			readyAsked = false
			continue
		}
		if readyAsked || snap.ReadyState {
			continue
		}
		readyAsked = true
		ready, _ := pterm.DefaultInteractiveConfirm.
			WithDefaultText("Ready for the next hand?").
			Show()
		if err := composer.SendReady(ctx, ready); err != nil {
			logger.Error().Err(err).Msg("ready toggle failed")
			readyAsked = false
		}
	}
}

func answerPrompt(ctx context.Context, prompt *gameview.TurnPrompt, composer *compose.Composer) error {
	options := make([]string, len(prompt.Options))
	for i, o := range prompt.Options {
		options[i] = string(o)
	}

	choice, err := pterm.DefaultInteractiveSelect.
		WithOptions(options).
		WithDefaultText("Your turn").
		Show()
	if err != nil {
		return err
	}

	action := protocol.PlayerAction(choice)
	if action != protocol.ActionRaise {
		return composer.Respond(ctx, prompt, action)
	}

	min, max := composer.RaiseBounds(prompt)
	raw, err := pterm.DefaultInteractiveTextInput.
		WithDefaultText(pterm.Sprintf("Raise amount [$%d-$%d]", min, max)).
		Show()
	if err != nil {
		return err
	}

	amount, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		pterm.Error.Printfln("not a number: %s", raw)
		return nil // prompt stays open for correction
	}
	amount = composer.SnapToStep(amount)

	if err := composer.SubmitRaise(ctx, prompt, amount); err != nil {
		// Out-of-bounds: nothing was sent, the prompt stays open.
		pterm.Error.Printfln("%v", err)
		return nil
	}
	return nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().Timestamp().Logger()
}
