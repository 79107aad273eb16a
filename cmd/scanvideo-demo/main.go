// scanvideo-demo - Reference application driving the scanline video engine
//
// Adapted from main.go's plain os.Args parsing and boilerplate banner;
// the CPU/sound/bus wiring that filled the rest of that file has no
// counterpart here, since this repository's scope is the video engine
// alone.

package main

import (
	"fmt"
	"os"

	"github.com/scanvideo/engine/video"
	"github.com/scanvideo/engine/video/ebitenbackend"
)

func boilerPlate() {
	fmt.Println("scanvideo-demo - reference application for the scanline video engine")
}

func main() {
	boilerPlate()

	if len(os.Args) != 2 {
		fmt.Println("Usage: ./scanvideo-demo <image.ham>")
		os.Exit(1)
	}

	mode := video.VGA640x480x60

	backend := ebitenbackend.New(mode.Width, mode.Height, mode.Format)
	engine, err := video.NewEngine(mode, backend, 4)
	if err != nil {
		fmt.Printf("failed to build engine: %v\n", err)
		os.Exit(1)
	}

	pixmap, err := video.NewPixmap(mode.Width, mode.Height, video.Indexed1)
	if err != nil {
		fmt.Printf("failed to build pixmap: %v\n", err)
		os.Exit(1)
	}
	cmap, err := video.NewColorMap(mode.Format, video.Indexed1)
	if err != nil {
		fmt.Printf("failed to build colormap: %v\n", err)
		os.Exit(1)
	}
	cmap.Entries[0] = mode.Format.FromRGB8(0, 0, 0)
	cmap.Entries[1] = mode.Format.FromRGB8(255, 255, 255)

	fb, err := video.NewFramebufferPlane(pixmap, cmap, mode.Format)
	if err != nil {
		fmt.Printf("failed to build framebuffer plane: %v\n", err)
		os.Exit(1)
	}

	if err := engine.Start(); err != nil {
		fmt.Printf("failed to start engine: %v\n", err)
		os.Exit(1)
	}
	engine.AddPlane(fb, true)

	fmt.Println("engine running — d: toggle degrade, b: add backdrop, r: remove backdrop, Ctrl+C: quit")
	c := newConsole(engine)
	c.Start()
	defer c.Stop()

	select {}
}
