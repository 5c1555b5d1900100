package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	_ "image/jpeg"
	_ "image/png"

	"go.lenslate.dev/lenslate/config"
	"go.lenslate.dev/lenslate/engine"
	"go.lenslate.dev/lenslate/internal/app"
	"go.lenslate.dev/lenslate/internal/types"
	"go.lenslate.dev/lenslate/pipeline"
	"go.lenslate.dev/lenslate/summarize"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Usage = usage
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	if args[0] == "version" {
		fmt.Printf("lenslate %s (%s)\n", version, commit)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, args[0], args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", types.UserMessage(err))
		slog.Debug("command failed", "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: lenslate [-v] <command> [arguments]

Commands:
  translate   translate text between languages
  image       recognize and translate text in an image file
  summarize   summarize text
  detect      detect the language of text
  languages   list supported languages
  prefs       show or update preferences
  version     print version
`)
}

func run(ctx context.Context, command string, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	svc, err := app.New(cfg, app.Options{AudioSink: os.Stdout})
	if err != nil {
		return err
	}
	defer svc.Close()

	switch command {
	case "translate":
		return cmdTranslate(ctx, svc, args)
	case "image":
		return cmdImage(ctx, svc, args)
	case "summarize":
		return cmdSummarize(ctx, svc, args)
	case "detect":
		return cmdDetect(ctx, svc, args)
	case "languages":
		return cmdLanguages(svc)
	case "prefs":
		return cmdPrefs(svc, args)
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func cmdTranslate(ctx context.Context, svc *app.Service, args []string) error {
	fs := flag.NewFlagSet("translate", flag.ExitOnError)
	source := fs.String("from", "auto", "source language code, or auto")
	target := fs.String("to", "", "target language code")
	fs.Parse(args)

	text, err := readText(fs.Args())
	if err != nil {
		return err
	}

	result, err := svc.TranslateText(ctx, text, *source, *target)
	if err != nil {
		return err
	}
	fmt.Println(result)
	return nil
}

func cmdImage(ctx context.Context, svc *app.Service, args []string) error {
	fs := flag.NewFlagSet("image", flag.ExitOnError)
	source := fs.String("from", "auto", "source language code, or auto")
	target := fs.String("to", "en", "target language code")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: lenslate image [-from lang] [-to lang] <file>")
	}

	img, err := loadImage(fs.Arg(0))
	if err != nil {
		return err
	}

	var last pipeline.Update
	for update := range svc.ProcessImage(ctx, img, *source, *target) {
		slog.Debug("pipeline stage", "id", update.ID, "stage", update.Stage)
		last = update
	}
	if last.Result.Err != nil {
		return last.Result.Err
	}

	if last.Result.DetectedLanguage != "" {
		fmt.Printf("Detected language: %s\n", last.Result.DetectedLanguage)
	}
	fmt.Printf("Recognized text:\n%s\n\n", last.Result.DetectedText)
	fmt.Printf("Translation:\n%s\n", last.Result.TranslatedText)
	return nil
}

func cmdSummarize(ctx context.Context, svc *app.Service, args []string) error {
	fs := flag.NewFlagSet("summarize", flag.ExitOnError)
	style := fs.String("style", string(summarize.StyleBrief),
		"summary style: brief, detailed, bullets, key_phrases")
	target := fs.String("to", "en", "target language code")
	fs.Parse(args)

	text, err := readText(fs.Args())
	if err != nil {
		return err
	}

	summary, err := svc.Summarize(ctx, text, summarize.Style(*style), *target)
	if err != nil {
		return err
	}
	fmt.Println(summary)
	return nil
}

func cmdDetect(ctx context.Context, svc *app.Service, args []string) error {
	text, err := readText(args)
	if err != nil {
		return err
	}

	code, err := svc.DetectLanguage(ctx, text)
	if err != nil {
		return err
	}
	if code == "" {
		fmt.Println("undetermined")
		return nil
	}
	fmt.Println(code)
	return nil
}

func cmdLanguages(svc *app.Service) error {
	languages, err := svc.Languages()
	if err != nil {
		return err
	}
	for _, lang := range languages {
		caps := make([]string, 0, 3)
		if lang.SupportsText {
			caps = append(caps, "text")
		}
		if lang.SupportsVoice {
			caps = append(caps, "voice")
		}
		if lang.SupportsCamera {
			caps = append(caps, "camera")
		}
		fmt.Printf("%-8s %-24s %-20s %s\n",
			lang.Code, lang.Name, lang.NativeName, strings.Join(caps, ","))
	}
	return nil
}

func cmdPrefs(svc *app.Service, args []string) error {
	prefs, err := svc.Preferences()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		data, err := json.MarshalIndent(prefs, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("expected key=value, got %q", arg)
		}
		switch key {
		case "source":
			prefs.DefaultSourceLanguage = value
		case "target":
			prefs.DefaultTargetLanguage = value
		case "theme":
			prefs.Theme = value
		case "font":
			prefs.FontSize = value
		case "autodetect":
			prefs.AutoDetectLanguage = value == "true"
		case "tts":
			prefs.TTSEnabled = value == "true"
		case "autotranslate":
			prefs.CameraAutoTranslate = value == "true"
		default:
			return fmt.Errorf("unknown preference %q", key)
		}
	}
	return svc.SavePreferences(prefs)
}

// readText takes text from the arguments, or from stdin when none are
// given.
func readText(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// loadImage reads an image file and wraps it with its decoded
// dimensions.
func loadImage(path string) (engine.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return engine.Image{}, fmt.Errorf("read image: %w", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return engine.Image{}, fmt.Errorf("decode image: %w", err)
	}

	return engine.Image{
		Width:  cfg.Width,
		Height: cfg.Height,
		Data:   data,
	}, nil
}
