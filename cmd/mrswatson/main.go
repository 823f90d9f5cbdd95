// Command mrswatson is an offline audio plugin host: it loads a chain of
// audio-effect and instrument plugins, feeds them blocks of audio and MIDI,
// and writes the processed result to an output file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tcwalther/mrswatson/pkg/audio"
	"github.com/tcwalther/mrswatson/pkg/debug"
	"github.com/tcwalther/mrswatson/pkg/host"
	"github.com/tcwalther/mrswatson/pkg/midi"
	"github.com/tcwalther/mrswatson/pkg/plugin"
)

const (
	programName  = "mrswatson"
	versionMajor = 1
	versionMinor = 0
	versionPatch = 0
	vendorName   = "Teragon Audio"
)

// Process return codes.
const (
	returnCodeSuccess = iota
	returnCodeNotRun
	returnCodeInvalidArgument
	returnCodeMissingRequiredOption
	returnCodeIOError
	returnCodeInvalidPluginChain
	returnCodePluginError
)

const licenseText = `Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the original copyright notice and
this notice appear in all copies. This software is provided "as is" without
warranty of any kind.`

// stringList collects a repeatable string option.
type stringList []string

func (l *stringList) String() string {
	return strings.Join(*l, ",")
}

func (l *stringList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func versionString() string {
	return fmt.Sprintf("%s version %d.%d.%d", programName, versionMajor, versionMinor, versionPatch)
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := flag.NewFlagSet(programName, flag.ContinueOnError)
	flags.SetOutput(os.Stdout)
	flags.Usage = func() {
		fmt.Printf("Usage: %s (options), where options include:\n", programName)
		flags.PrintDefaults()
	}

	var (
		showHelp      = flags.Bool("help", false, "Print this help and exit")
		showVersion   = flags.Bool("version", false, "Print version and license information and exit")
		listFileTypes = flags.Bool("list-file-types", false, "Print supported source types and exit")
		verbose       = flags.Bool("verbose", false, "Verbose logging")
		quiet         = flags.Bool("quiet", false, "Only log errors")
		colorScheme   = flags.String("color", "", "Colored logging with the given scheme (dark, light)")
		blocksize     = flags.Int("blocksize", audio.DefaultBlocksize, "Processing blocksize in frames")
		channels      = flags.Int("channels", audio.DefaultNumChannels, "Number of channels")
		sampleRate    = flags.Float64("sample-rate", audio.DefaultSampleRate, "Sample rate in Hz")
		inputPath     = flags.String("input", "", "Input sample source")
		outputPath    = flags.String("output", "", "Output sample source")
		midiPath      = flags.String("midi-file", "", "MIDI file source")
		displayInfo   = flags.Bool("display-info", false, "Dump plugin metadata after initialization")
		tailTimeMs    = flags.Int("tail-time", 0, "Milliseconds of silence to process after the input ends")
	)
	var pluginArgs stringList
	flags.Var(&pluginArgs, "plugin", "Plugins to append to the chain (comma-separated list, repeatable)")

	if len(args) == 0 {
		flags.Usage()
		return returnCodeNotRun
	}
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return returnCodeNotRun
		}
		return returnCodeInvalidArgument
	}

	switch {
	case *showHelp:
		flags.Usage()
		return returnCodeNotRun
	case *showVersion:
		fmt.Printf("%s\nCopyright (c) %d, %s. All rights reserved.\n\n%s\n",
			versionString(), time.Now().Year(), vendorName, licenseText)
		return returnCodeNotRun
	case *listFileTypes:
		fmt.Println("Supported source types:")
		for _, sourceType := range audio.SupportedTypes() {
			fmt.Printf("  %s\n", sourceType)
		}
		fmt.Println("Internal plugins:")
		for _, name := range plugin.InternalPluginNames() {
			fmt.Printf("  %s\n", name)
		}
		return returnCodeNotRun
	}

	if *verbose {
		debug.SetLevel(debug.LogLevelDebug)
	} else if *quiet {
		debug.SetLevel(debug.LogLevelError)
	}
	if *colorScheme != "" {
		if err := debug.SetColorScheme(*colorScheme); err != nil {
			debug.Error("%v", err)
			return returnCodeInvalidArgument
		}
	}

	settings := audio.NewSettings()
	if err := settings.SetSampleRate(*sampleRate); err != nil {
		debug.Error("%v", err)
		return returnCodeInvalidArgument
	}
	if err := settings.SetBlocksize(*blocksize); err != nil {
		debug.Error("%v", err)
		return returnCodeInvalidArgument
	}
	if err := settings.SetNumChannels(*channels); err != nil {
		debug.Error("%v", err)
		return returnCodeInvalidArgument
	}
	if *tailTimeMs < 0 {
		debug.Error("Invalid tail time %d", *tailTimeMs)
		return returnCodeInvalidArgument
	}

	debug.Info("%s initialized", versionString())

	chain := plugin.NewChain()
	for _, arg := range pluginArgs {
		if err := chain.AddFromArgumentString(arg); err != nil {
			debug.Error("%v", err)
			return returnCodeInvalidPluginChain
		}
	}
	if chain.Len() == 0 {
		debug.Error("No plugins loaded")
		return returnCodeMissingRequiredOption
	}
	if err := chain.InitializeAll(settings); err != nil {
		debug.Error("Could not initialize plugin chain: %v", err)
		chain.Close()
		return returnCodePluginError
	}
	if *displayInfo {
		chain.DisplayInfo()
	}

	var inputSource audio.Source
	if *inputPath != "" {
		source, err := audio.NewSource(audio.GuessSourceType(*inputPath), *inputPath, settings)
		if err != nil {
			debug.Error("Input source: %v", err)
			chain.Close()
			return returnCodeIOError
		}
		inputSource = source
	}
	var outputSource audio.Source
	if *outputPath != "" {
		source, err := audio.NewSource(audio.GuessSourceType(*outputPath), *outputPath, settings)
		if err != nil {
			debug.Error("Output source: %v", err)
			chain.Close()
			return returnCodeIOError
		}
		outputSource = source
	}

	var sequence *midi.Sequence
	if *midiPath != "" {
		midiSource := midi.NewFileSource(*midiPath)
		if err := midiSource.Open(); err != nil {
			debug.Error("MIDI source: %v", err)
			chain.Close()
			return returnCodeIOError
		}
		sequence = midi.NewSequence()
		if err := midiSource.ReadAll(settings.SampleRate(), sequence); err != nil {
			debug.Error("Failed reading MIDI events from source '%s': %v", midiSource.Name(), err)
			midiSource.Close()
			chain.Close()
			return returnCodeIOError
		}
		midiSource.Close()
	}

	engine := &host.Engine{
		Settings: settings,
		Clock:    audio.NewClock(),
		Input:    inputSource,
		Output:   outputSource,
		Chain:    chain,
		Sequence: sequence,
		TailTime: time.Duration(*tailTimeMs) * time.Millisecond,
	}

	if err := engine.Run(); err != nil {
		debug.Error("%v", err)
		switch {
		case errors.Is(err, host.ErrEmptyChain),
			errors.Is(err, host.ErrNoOutputSource),
			errors.Is(err, host.ErrNoInputSource),
			errors.Is(err, host.ErrNoMidiSource):
			return returnCodeMissingRequiredOption
		default:
			return returnCodeIOError
		}
	}

	debug.Info("Goodbye!")
	return returnCodeSuccess
}
