package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/Black-And-White-Club/bowl-bot/app"
	scorecardservice "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/application"
	scorecardtypes "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/domain/types"
	"github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/infrastructure/parsers"
	scorecarddb "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/infrastructure/repositories"
	"github.com/Black-And-White-Club/bowl-bot/app/shared/observability"
	"github.com/Black-And-White-Club/bowl-bot/config"
	"github.com/Black-And-White-Club/bowl-bot/pkg/bowling"
	bowljwt "github.com/Black-And-White-Club/bowl-bot/pkg/jwt"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"go.opentelemetry.io/otel"
)

// errRejected makes the process exit non-zero when a ball or cell is refused.
var errRejected = cli.Exit("", 1)

func newApp() *cli.App {
	return &cli.App{
		Name:  "bowl",
		Usage: "score ten-pin bowling games",
		Commands: []*cli.Command{
			scoreCommand(),
			checkCommand(),
			importCommand(),
			tokenCommand(),
			serveCommand(),
		},
	}
}

// localService runs the scorecard service in process with nothing observed.
func localService() scorecardservice.Service {
	return scorecardservice.NewScorecardService(
		scorecarddb.NewMemoryRepository(),
		parsers.NewFactory(),
		observability.NoOpLogger,
		observability.NoOpMetrics{},
		otel.Tracer("bowl"),
	)
}

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{Name: "json", Usage: "print JSON instead of a table"}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func scoreText(score *int) string {
	if score == nil {
		return "?"
	}
	return strconv.Itoa(*score)
}

func printScorecard(w io.Writer, card scorecardtypes.PlayerScorecard) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FRAME\tBALLS\tSCORE\tTOTAL")
	for i, fr := range card.Frames {
		balls := strings.TrimSpace(strings.Join(card.Balls[i], " "))
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", fr.Frame, balls, scoreText(fr.Score), scoreText(card.Cumulative[i]))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if card.Total != nil {
		_, err := fmt.Fprintf(w, "Total: %d\n", *card.Total)
		return err
	}
	_, err := fmt.Fprintf(w, "Running: %d (game incomplete)\n", card.Running)
	return err
}

func scoreCommand() *cli.Command {
	return &cli.Command{
		Name:      "score",
		Usage:     "score a game written in lane notation",
		ArgsUsage: "X 7/ 9- X -8 8/ -6 X X X81",
		Flags:     []cli.Flag{jsonFlag()},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return cli.Exit("a game line is required", 2)
			}
			frames, err := bowling.ParseLine(strings.Join(c.Args().Slice(), " "))
			if err != nil {
				return cli.Exit(err.Error(), 2)
			}

			card := scorecardtypes.NewPlayerScorecard(uuid.Nil, "", frames)
			for _, r := range card.Rejected {
				fmt.Fprintf(c.App.ErrWriter, "warning: %s %q\n", r.Reason, r.Value)
			}
			if c.Bool("json") {
				return writeJSON(c.App.Writer, card)
			}
			return printScorecard(c.App.Writer, card)
		},
	}
}

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "ask the input gate whether a ball may be typed",
		ArgsUsage: "VALUE",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "frame", Usage: "frame number 1-10", Required: true},
			&cli.IntFlag{Name: "ball", Usage: "ball number; defaults to the slot after the given balls"},
			&cli.StringFlag{Name: "first", Usage: "first ball already typed in the frame"},
			&cli.StringFlag{Name: "second", Usage: "second ball already typed in the frame"},
			jsonFlag(),
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("exactly one VALUE is required", 2)
			}

			ball := c.Int("ball")
			if ball == 0 {
				ball = 1
				if c.IsSet("first") {
					ball = 2
				}
				if c.IsSet("second") {
					ball = 3
				}
			}

			resp := localService().CheckBall(c.Context, scorecardservice.CheckBallRequest{
				Frame:      c.Int("frame"),
				Ball:       ball,
				Value:      c.Args().First(),
				FrameBalls: []string{c.String("first"), c.String("second")},
			})

			if c.Bool("json") {
				if err := writeJSON(c.App.Writer, resp); err != nil {
					return err
				}
			} else if resp.Valid {
				fmt.Fprintln(c.App.Writer, "valid")
			} else {
				fmt.Fprintf(c.App.Writer, "invalid: %s\n", resp.Reason)
			}

			if !resp.Valid {
				return errRejected
			}
			return nil
		},
	}
}

func importCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "score a CSV or XLSX scorecard",
		ArgsUsage: "FILE",
		Flags:     []cli.Flag{jsonFlag()},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("exactly one FILE is required", 2)
			}
			path := c.Args().First()
			data, err := os.ReadFile(path)
			if err != nil {
				return cli.Exit(err.Error(), 2)
			}

			result, err := localService().ImportScorecard(c.Context, filepath.Base(path), data)
			if err != nil {
				return err
			}
			if result.IsFailure() {
				return cli.Exit(result.Failure.Reason, 2)
			}
			summary := result.Success

			if c.Bool("json") {
				if err := writeJSON(c.App.Writer, summary); err != nil {
					return err
				}
			} else {
				for _, p := range summary.Players {
					fmt.Fprintf(c.App.Writer, "%s\n", p.Name)
					if err := printScorecard(c.App.Writer, p); err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer)
				}
				for _, r := range summary.Rejected {
					fmt.Fprintf(c.App.ErrWriter, "rejected %s row %d frame %d ball %d %q: %s\n",
						r.Player, r.Row, r.Frame, r.Ball, r.Value, r.Reason)
				}
			}

			if len(summary.Rejected) > 0 {
				return errRejected
			}
			return nil
		},
	}
}

func tokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "mint a bearer token for the scoring API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "secret", EnvVars: []string{"JWT_SECRET"}, Required: true},
			&cli.StringFlag{Name: "issuer", EnvVars: []string{"JWT_ISSUER"}, Value: config.DefaultJWTIssuer},
			&cli.StringFlag{Name: "subject", Usage: "who the token is for", Required: true},
			&cli.StringFlag{Name: "lane", Usage: "lane the token is bound to"},
			&cli.StringFlag{Name: "role", Value: string(bowljwt.RoleScorer), Usage: "viewer, scorer or admin"},
			&cli.DurationFlag{Name: "ttl", Usage: "token lifetime; defaults to 12h"},
		},
		Action: func(c *cli.Context) error {
			tokens := bowljwt.NewService(c.String("secret"), c.String("issuer"), 0)
			token, err := tokens.GenerateToken(c.String("subject"), c.String("lane"), bowljwt.Role(c.String("role")), c.Duration("ttl"))
			if err != nil {
				if errors.Is(err, bowljwt.ErrUnknownRole) {
					return cli.Exit(err.Error(), 2)
				}
				return err
			}
			_, err = fmt.Fprintln(c.App.Writer, token)
			return err
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the scoring service",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "config.yaml", Usage: "path to the configuration file"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.LoadConfig(c.String("config"))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			application := app.NewApp()
			if err := application.Initialize(ctx, cfg); err != nil {
				_ = application.Close()
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			runErr := application.Run(ctx)
			closeErr := application.Close()
			return errors.Join(runErr, closeErr)
		},
	}
}
