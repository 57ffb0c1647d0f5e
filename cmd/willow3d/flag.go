package main

import (
	"flag"
	"fmt"
	"log/slog"
	"strings"
)

type logLevelFlag struct {
	value slog.Level
}

func (l *logLevelFlag) String() string {
	return l.value.String()
}

func (l *logLevelFlag) Set(value string) error {
	m := map[string]slog.Level{"DEBUG": slog.LevelDebug, "INFO": slog.LevelInfo, "WARN": slog.LevelWarn, "ERROR": slog.LevelError}
	v, ok := m[strings.ToUpper(value)]
	if !ok {
		return fmt.Errorf("unknown log level: %s", value)
	}
	l.value = v
	return nil
}

// defined flags
var (
	levelFlag   logLevelFlag
	sceneFlag   = flag.String("scene", "torusknot", "Assembly to show")
	panelFlag   = flag.String("panel", "", "Preset file (.toml, .yaml) loaded into the panel and watched for changes")
	logFileFlag = flag.String("logfile", "", "Write logs to this file instead of the console")
	debugFlag   = flag.Bool("debug", false, "Log frame stats and tree warnings")
	scriptFlag  = flag.String("script", "", "Run a test script (.json, .yaml) and exit when it is done")
	widthFlag   = flag.Int("width", 800, "Window width in pixels")
	heightFlag  = flag.Int("height", 600, "Window height in pixels")
	fpsFlag     = flag.Bool("fps", false, "Show an FPS counter")
)

func init() {
	levelFlag.value = slog.LevelInfo
	flag.Var(&levelFlag, "loglevel", "set log level")
}
