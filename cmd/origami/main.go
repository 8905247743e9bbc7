// Command origami downloads contest problems, solves them, draws them and
// submits the solutions.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/osuushi/origami"
	"github.com/osuushi/origami/contest"
	"github.com/osuushi/origami/dbg"
	"github.com/osuushi/origami/fold"
	"github.com/osuushi/origami/format"
	"github.com/osuushi/origami/internal/config"
	"github.com/osuushi/origami/render"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app = kingpin.New("origami", "Fold paper into contest silhouettes.")

	configPath = app.Flag("config", "YAML settings file.").Default("origami.yaml").String()
	dirFlag    = app.Flag("dir", "Problem and solution directory.").String()
	exactFlag  = app.Flag("exact", "Solve with exact rationals.").Bool()
	maxFolds   = app.Flag("max-folds", "Give up after this many folds.").Default("-1").Int()
	logLevel   = app.Flag("log-level", "debug, info, warn or error.").String()
	preview    = app.Flag("preview", "Show drawings in the terminal (iTerm).").Bool()
	color      = app.Flag("color", "Color status output.").Default("true").Bool()

	updateCmd = app.Command("update", "Download problems from the latest snapshot.")

	drawCmd = app.Command("draw", "Draw a problem, and its solution if there is one.")
	drawID  = drawCmd.Arg("id", "Problem id.").Required().Int()

	drawAllCmd = app.Command("draw-all", "Draw every downloaded problem.")

	solveCmd = app.Command("solve", "Solve a problem and write its solution file.")
	solveID  = solveCmd.Arg("id", "Problem id.").Required().Int()

	submitCmd = app.Command("submit", "Submit a solution file.")
	submitID  = submitCmd.Arg("id", "Problem id.").Required().Int()
)

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	cfg, err := loadConfig()
	app.FatalIfError(err, "config")

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)
	fold.SetLogger(logger)
	dbg.SetColor(*color)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch command {
	case updateCmd.FullCommand():
		err = update(ctx, cfg)
	case drawCmd.FullCommand():
		err = draw(cfg, *drawID)
	case drawAllCmd.FullCommand():
		err = drawAll(cfg)
	case solveCmd.FullCommand():
		err = solve(cfg, *solveID)
	case submitCmd.FullCommand():
		err = submit(ctx, cfg, *submitID)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, dbg.Fail(err.Error()))
		os.Exit(1)
	}
}

// Flags win over the settings file.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return cfg, err
	}
	if *dirFlag != "" {
		cfg.ProblemsDir = *dirFlag
	}
	if *exactFlag {
		cfg.Exact = true
	}
	if *maxFolds >= 0 {
		cfg.MaxFolds = *maxFolds
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	return cfg, cfg.Validate()
}

func newClient(cfg config.Config) *contest.Client {
	c := contest.NewClient(cfg.APIURL, cfg.APIKey)
	c.Interval = cfg.RequestInterval
	c.Logger = slog.Default()
	return c
}

func update(ctx context.Context, cfg config.Config) error {
	c := newClient(cfg)
	problems, err := c.LatestProblems(ctx)
	if err != nil {
		return err
	}
	saved, err := c.SaveProblems(ctx, cfg.ProblemsDir, problems)
	fmt.Printf("%s %d new of %d problems\n", dbg.Ok("saved"), saved, len(problems))
	return err
}

func renderOptions(cfg config.Config) render.Options {
	return render.Options{Scale: cfg.Render.Scale, Padding: cfg.Render.Padding, Labels: true}
}

func savePicture(path string, draw func() error) error {
	if err := draw(); err != nil {
		return err
	}
	fmt.Println(dbg.Note(path))
	if *preview {
		if err := render.Show(path, os.Stdout); err != nil {
			slog.Warn("preview failed", "err", err)
		}
	}
	return nil
}

func draw(cfg config.Config, id int) error {
	opts := renderOptions(cfg)
	problemPath := contest.ProblemPath(cfg.ProblemsDir, id)
	f, err := os.Open(problemPath)
	if err != nil {
		return errors.Wrap(err, "open problem")
	}
	defer f.Close()
	shape, skel, err := format.ParseProblem[fold.Rat](f)
	if err != nil {
		return errors.Wrap(err, problemPath)
	}

	pngPath := strings.TrimSuffix(problemPath, ".txt") + ".png"
	err = savePicture(pngPath, func() error {
		img, err := render.DrawProblem(shape, skel, opts)
		if err != nil {
			return err
		}
		return render.SavePNG(img, pngPath)
	})
	if err != nil {
		return err
	}

	solutionPath := contest.SolutionPath(cfg.ProblemsDir, id)
	sf, err := os.Open(solutionPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "open solution")
	}
	defer sf.Close()
	_, dest, err := origami.Unfold(sf)
	if err != nil {
		return errors.Wrap(err, solutionPath)
	}
	pngPath = strings.TrimSuffix(solutionPath, ".txt") + ".png"
	return savePicture(pngPath, func() error {
		img, err := render.DrawFacets(dest, opts)
		if err != nil {
			return err
		}
		return render.SavePNG(img, pngPath)
	})
}

func drawAll(cfg config.Config) error {
	paths, err := filepath.Glob(filepath.Join(cfg.ProblemsDir, "*.problem.txt"))
	if err != nil {
		return err
	}
	failed := 0
	for _, path := range paths {
		var id int
		if _, err := fmt.Sscanf(filepath.Base(path), "%d.problem.txt", &id); err != nil {
			continue
		}
		if err := draw(cfg, id); err != nil {
			slog.Warn("draw failed", "id", id, "err", err)
			failed++
		}
	}
	if failed > 0 {
		return errors.Errorf("%d of %d problems failed to draw", failed, len(paths))
	}
	return nil
}

func solve(cfg config.Config, id int) error {
	in, err := os.Open(contest.ProblemPath(cfg.ProblemsDir, id))
	if err != nil {
		return errors.Wrap(err, "open problem")
	}
	defer in.Close()

	outPath := contest.SolutionPath(cfg.ProblemsDir, id)
	out, err := os.Create(outPath)
	if err != nil {
		return errors.Wrap(err, "create solution")
	}
	report, err := origami.Solve(in, out, origami.Options{MaxFolds: cfg.MaxFolds, Exact: cfg.Exact})
	closeErr := out.Close()
	if err != nil {
		os.Remove(outPath)
		return errors.Wrapf(err, "problem %d", id)
	}
	if closeErr != nil {
		return errors.Wrap(closeErr, "write solution")
	}
	slog.Debug("solve report", "report", dbg.Dump(report))
	fmt.Printf("%s problem %d: %d folds, %d facets, %d vertices -> %s\n",
		dbg.Ok("solved"), id, report.Folds, report.Facets, report.Vertices, outPath)
	return nil
}

func submit(ctx context.Context, cfg config.Config, id int) error {
	f, err := os.Open(contest.SolutionPath(cfg.ProblemsDir, id))
	if err != nil {
		return errors.Wrap(err, "open solution")
	}
	defer f.Close()
	result, err := newClient(cfg).Submit(ctx, id, f)
	if err != nil {
		return err
	}
	fmt.Printf("%s problem %d: resemblance %s\n",
		dbg.Ok("submitted"), result.ProblemID, dbg.Note(fmt.Sprintf("%.6f", result.Resemblance)))
	return nil
}
