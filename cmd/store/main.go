package main

import (
	"fmt"
	"log"

	"github.com/alecthomas/kong"

	"github.com/voidshard/scene"
)

const desc = `Saves, loads & lists projects in the configured store (sqlite3 or postgres).`

var cli struct {
	Config string `short:"c" help:"yaml config file"`

	Put struct {
		Name  string `arg:"" help:"name to save the project under"`
		Input string `arg:"" help:"project .json file"`
	} `cmd:"" help:"save a project"`

	Get struct {
		Name   string `arg:"" help:"name of the saved project"`
		Output string `arg:"" help:"where to write the project .json file"`

		Manifest bool `help:"print the resources the project depends on"`
	} `cmd:"" help:"load a project"`

	List struct{} `cmd:"" help:"list saved projects"`
}

func main() {
	ctx := kong.Parse(&cli, kong.Name("store"), kong.Description(desc))

	cfg, err := scene.LoadConfig(cli.Config)
	if err != nil {
		panic(err)
	}

	store, err := cfg.OpenStore()
	if err != nil {
		panic(err)
	}

	switch ctx.Command() {
	case "put <name> <input>":
		p, err := scene.Open(cli.Put.Input)
		if err != nil {
			panic(err)
		}
		err = store.Save(cli.Put.Name, p)
		if err != nil {
			panic(err)
		}
		log.Printf("saved %s as %s (%s %s)\n", cli.Put.Input, cli.Put.Name, cfg.Store.Driver, cfg.Namespace)
	case "get <name> <output>":
		p, err := store.Load(cli.Get.Name)
		if err != nil {
			panic(err)
		}
		err = p.WriteFile(cli.Get.Output)
		if err != nil {
			panic(err)
		}
		log.Printf("wrote %s to %s\n", cli.Get.Name, cli.Get.Output)
		if cli.Get.Manifest {
			for _, res := range scene.Manifest(p) {
				fmt.Println(abbreviate(res))
			}
		}
	case "list":
		names, err := store.List()
		if err != nil {
			panic(err)
		}
		for _, n := range names {
			fmt.Println(n)
		}
	default:
		panic(ctx.Command())
	}
}

// abbreviate shortens embedded (data uri) resources for printing
func abbreviate(res string) string {
	if len(res) > 64 {
		return fmt.Sprintf("%s... (%d bytes)", res[:48], len(res))
	}
	return res
}
