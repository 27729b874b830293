package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"path"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/muhamadriskonalfani/war-space/assets"
	"github.com/muhamadriskonalfani/war-space/prefabs"
)

const viewSize = 512

type sprite struct {
	name  string
	img   *ebiten.Image
	scale float64
}

// viewer cycles through the embedded sprites at the scale their prefab
// draws them with.
type viewer struct {
	sprites     []sprite
	current     int
	tick        int
	ticksPerImg int
}

func (v *viewer) Update() error {
	if len(v.sprites) <= 1 {
		return nil
	}
	v.tick++
	if v.tick >= v.ticksPerImg {
		v.tick = 0
		v.current = (v.current + 1) % len(v.sprites)
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x11, 0x11, 0x38, 0xff})
	if len(v.sprites) == 0 {
		ebitenutil.DebugPrint(screen, "no sprites")
		return
	}
	s := v.sprites[v.current]
	w := float64(s.img.Bounds().Dx()) * s.scale
	h := float64(s.img.Bounds().Dy()) * s.scale

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(s.scale, s.scale)
	op.GeoM.Translate((viewSize-w)/2, (viewSize-h)/2)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(s.img, op)

	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  x%.2f  (%d/%d)", s.name, s.scale, v.current+1, len(v.sprites)))
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return viewSize, viewSize
}

func prefabScales(lib *prefabs.Library) map[string]float64 {
	scales := make(map[string]float64)
	for _, name := range prefabs.EntityPrefabs {
		spec, err := lib.Entity(name)
		if err != nil {
			continue
		}
		sp, err := prefabs.DecodeComponentSpec[prefabs.SpriteSpec](spec.Components["sprite"])
		if err != nil || sp.Image == "" {
			continue
		}
		tr, err := prefabs.DecodeComponentSpec[prefabs.TransformSpec](spec.Components["transform"])
		if err != nil {
			continue
		}
		scales[strings.Replace(sp.Image, "%d", "*", 1)] = tr.Scale
	}
	return scales
}

func scaleFor(scales map[string]float64, name string, fallback float64) float64 {
	for pattern, s := range scales {
		if ok, _ := path.Match(pattern, name); ok && s > 0 {
			return s
		}
	}
	return fallback
}

func main() {
	fps := flag.Float64("fps", 1, "sprites shown per second")
	native := flag.Bool("native", false, "draw at 1:1 instead of the prefab scale")
	flag.Parse()

	lib, err := prefabs.NewLibrary("")
	if err != nil {
		log.Fatal(err)
	}
	scales := prefabScales(lib)

	names, err := assets.List("img")
	if err != nil {
		log.Fatal(err)
	}
	v := &viewer{ticksPerImg: 60}
	if *fps > 0 {
		v.ticksPerImg = max(1, int(60 / *fps))
	}
	for _, name := range names {
		img, err := assets.LoadImage(name)
		if err != nil {
			log.Fatal(err)
		}
		scale := 1.0
		if !*native {
			scale = scaleFor(scales, name, 1)
		}
		v.sprites = append(v.sprites, sprite{name: name, img: img, scale: scale})
	}

	ebiten.SetWindowSize(viewSize, viewSize)
	ebiten.SetWindowTitle("war-space sprites")
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}
