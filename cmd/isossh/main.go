package main

import (
	"flag"
	"log"
	"net"
	"os"

	"github.com/milk9111/isometric/server"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	addr := flag.String("addr", ":2222", "listen address")
	hostKey := flag.String("hostkey", "host_key", "host key path, generated if missing")
	sceneName := flag.String("scene", "scene.yaml", "scene prefab each session runs")
	mapName := flag.String("map", "", "override the scene's map")
	fps := flag.Int("fps", 20, "frames per second per session")
	flag.Parse()

	if port := os.Getenv("PORT"); port != "" {
		*addr = ":" + port
	}

	srv := &server.Server{Addr: *addr, HostKeyPath: *hostKey, Scene: *sceneName, Map: *mapName, FPS: *fps}
	if _, port, err := net.SplitHostPort(*addr); err == nil {
		log.Printf("connect with: ssh -t -p %s localhost", port)
	}
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("ssh server: %v", err)
	}
}
