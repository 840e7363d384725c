package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/automoto/simpleaudio/config"
	"github.com/automoto/simpleaudio/fonts"
	"github.com/automoto/simpleaudio/scenes"
	"github.com/automoto/simpleaudio/sound"
	"github.com/automoto/simpleaudio/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	scene  Scene
	width  int
	height int
}

func NewGame(reg *sound.Registry, window config.WindowConfig) *Game {
	return &Game{
		scene:  scenes.NewSoundboardScene(reg),
		width:  window.Width,
		height: window.Height,
	}
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	return g.width, g.height
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	root := &cobra.Command{
		Use:          "simpleaudio",
		Short:        "Play named sounds from a catalog",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configureViper(v, cfgFile)

			flags := cmd.Flags()
			for key, name := range map[string]string{
				"catalog":     "catalog",
				"assets":      "assets",
				"sample_rate": "sample-rate",
			} {
				if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
					return err
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, catalog, err := config.Load(v)
			if err != nil {
				return err
			}
			return runSoundboard(settings, catalog)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ./simpleaudio.yaml)")
	flags.String("catalog", "", "sound catalog YAML (default built-in catalog)")
	flags.String("assets", "assets", "directory clip paths are relative to")
	flags.Int("sample-rate", config.Audio.SampleRate, "audio sample rate")

	root.AddCommand(newListCmd(v), newCheckCmd(v))
	return root
}

// configureViper points v at the config file and SIMPLEAUDIO_* environment.
// Nested keys map to env names with underscores: window.width -> SIMPLEAUDIO_WINDOW_WIDTH.
func configureViper(v *viper.Viper, cfgFile string) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("simpleaudio")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("SIMPLEAUDIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

func newListCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the sounds in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, catalog, err := config.Load(v)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, s := range catalog.Sounds {
				fmt.Fprintf(out, "%-16s %-28s vol=%.2f pitch=%.2f loop=%t fade=%d\n",
					s.Name, s.Clip, s.Volume, s.Pitch, s.Loop, s.FadeOutFrames)
			}
			return nil
		},
	}
}

func newCheckCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the catalog and decode every clip",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, catalog, err := config.Load(v)
			if err != nil {
				return err
			}
			if err := systems.CheckCatalog(catalog, os.DirFS(settings.Assets), settings.SampleRate); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d sounds OK\n", len(catalog.Sounds))
			return nil
		},
	}
}

func runSoundboard(settings *config.Settings, catalog *config.Catalog) error {
	if err := fonts.LoadDefaults(); err != nil {
		return err
	}

	// Saved volume is restored once the scene attaches the registry
	if err := systems.InitPersistence("simpleaudio"); err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
	}

	factory := systems.NewPlayerFactory(os.DirFS(settings.Assets), settings.SampleRate)
	reg, err := systems.StartAudio(factory, catalog)
	if err != nil {
		return fmt.Errorf("failed to start audio: %w", err)
	}
	defer func() {
		if err := systems.StopAudio(); err != nil {
			log.Printf("Warning: %v", err)
		}
	}()

	ebiten.SetWindowSize(settings.Window.Width, settings.Window.Height)
	ebiten.SetWindowTitle(settings.Window.Title)

	return ebiten.RunGame(NewGame(reg, settings.Window))
}
