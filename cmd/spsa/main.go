package main

import (
	"flag"
	"log"

	"github.com/milk9111/isometric/scene"
)

// The runner only animates while a direction key is held.
func main() {
	watch := flag.Bool("watch", false, "reload when the prefab or sheet changes")
	debug := flag.Bool("debug", false, "show frame statistics")
	flag.Parse()

	game, err := scene.NewGame(scene.Options{Scene: "sprite_demo.yaml", Watch: *watch, Debug: *debug})
	if err != nil {
		log.Fatal(err)
	}
	if err := game.Run(); err != nil {
		log.Fatal(err)
	}
}
