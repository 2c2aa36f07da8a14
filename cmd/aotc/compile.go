package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"aotc/internal/backend"
	"aotc/internal/compiler"
	"aotc/internal/config"
	"aotc/internal/report"
	"aotc/internal/source"
)

var logLevels = map[string]int{
	"silent":  report.LogLevelSilent,
	"error":   report.LogLevelError,
	"warn":    report.LogLevelWarn,
	"verbose": report.LogLevelVerbose,
}

func runCompile(cmd *cobra.Command, args []string) error {
	srcPath := args[0]

	outFlag, _ := cmd.Flags().GetString("out")
	emitIRFlag, _ := cmd.Flags().GetBool("emit-ir")
	logLevelFlag, _ := cmd.Flags().GetString("log-level")
	configFlag, _ := cmd.Flags().GetString("config")

	if configFlag != "" {
		manifest, err := config.Load(configFlag)
		if err != nil {
			return err
		}
		if outFlag == "" {
			outFlag = manifest.Output
		}
		if !emitIRFlag {
			emitIRFlag = manifest.EmitIR
		}
		if !cmd.Flags().Changed("log-level") && manifest.LogLevel != "" {
			logLevelFlag = manifest.LogLevel
		}
	}

	logLevel, ok := logLevels[logLevelFlag]
	if !ok {
		return fmt.Errorf("unrecognised --log-level %q (want silent|error|warn|verbose)", logLevelFlag)
	}

	if outFlag == "" {
		stem := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
		outFlag = stem
	}

	buf, err := source.Load(srcPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", srcPath, err)
	}

	reporter := report.NewReporter(logLevel, srcPath, buf)

	result, err := compiler.Compile(buf)
	if err != nil {
		reporter.Fatal(err)
		return err // unreachable: Fatal exits the process
	}

	fmt.Println(result.Module.String())

	format := backend.EmitBitcode
	if emitIRFlag {
		format = backend.EmitIR
	}

	outPath, err := backend.WriteBitcode(result.Module, outFlag, format)
	if err != nil {
		reporter.Fatal(err)
		return err
	}

	reporter.Info("wrote %s", outPath)
	return nil
}
