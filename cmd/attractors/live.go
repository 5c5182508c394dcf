package main

import (
	"fmt"

	"github.com/san-kum/attractors/internal/audio"
	"github.com/san-kum/attractors/internal/viz"
	"github.com/spf13/cobra"
)

func play(cmd *cobra.Command, args []string) error {
	cfg, err := loadPatch(cmd, args)
	if err != nil {
		return err
	}
	m, err := cfg.Build()
	if err != nil {
		return err
	}

	player, err := audio.NewPlayer(m, audio.Config{
		SampleRate: cfg.SampleRate,
		BufferSize: bufferSize,
		Gain:       gain,
		Left:       leftOut,
		Right:      rightOut,
	})
	if err != nil {
		return err
	}
	if err := player.Start(); err != nil {
		return err
	}
	defer player.Stop()

	if scope {
		// the audio callback owns the module; the scope only reads ports
		return viz.Run(m, viz.MonitorConfig{
			SampleRate: player.SampleRate(),
			FPS:        fps,
			Owned:      false,
			Theme:      theme,
		})
	}

	fmt.Printf("playing %s: left=%s right=%s (ctrl+c to stop)\n", cfg.Module, leftOut, rightOut)
	<-cmd.Context().Done()
	fmt.Printf("\nplayed %.1fs, peak %.3f\n", float64(player.Frames())/player.SampleRate(), player.Peak())
	return nil
}

func watch(cmd *cobra.Command, args []string) error {
	cfg, err := loadPatch(cmd, args)
	if err != nil {
		return err
	}
	m, err := cfg.Build()
	if err != nil {
		return err
	}

	return viz.Run(m, viz.MonitorConfig{
		SampleRate: cfg.SampleRate,
		FPS:        fps,
		Owned:      true,
		Theme:      theme,
	})
}
