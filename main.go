package main

import (
	"flag"
	"log"

	"github.com/milk9111/isometric/scene"
)

func main() {
	sceneName := flag.String("scene", "scene.yaml", "scene spec in prefabs/")
	mapName := flag.String("map", "", "map in levels/ overriding the scene's map (.txt optional)")
	watch := flag.Bool("watch", false, "reload the scene when prefabs, maps or sprites change")
	debug := flag.Bool("debug", false, "show frame statistics")
	flag.Parse()

	game, err := scene.NewGame(scene.Options{
		Scene: *sceneName,
		Map:   *mapName,
		Watch: *watch,
		Debug: *debug,
	})
	if err != nil {
		log.Fatal(err)
	}
	if err := game.Run(); err != nil {
		log.Fatal(err)
	}
}
