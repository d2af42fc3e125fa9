package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/binzume/lipsync/converter"
	"github.com/binzume/lipsync/faceshift"
	"github.com/binzume/lipsync/lipsync"
	"github.com/binzume/lipsync/mmd"
	"github.com/binzume/lipsync/rig"
	"github.com/qmuntal/gltf"
)

const usage = `Usage: %s [options] command [args]

Commands:
  viseme NAME          set a viseme pose (keyed at -frame with -key)
  moho FILE.dat        load a Moho lip-sync file
  delete               delete lip-sync keys
  bake                 bake face shape drivers into shape key animation
  faceshift FILE.bvh   load a FaceShift capture
  vmd FILE.vmd         import VMD morph animation
  export IN.glb OUT.glb
                       add shape key animation to a glTF binary
  layout               print the viseme panel layout
  list                 print visemes and mouth shapes

Options:
`

func loadAnimation(path string) (*mmd.Animation, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return mmd.NewVMDParser(r).Parse()
}

func selectObject(scene *rig.Scene, name string) (*rig.Object, error) {
	if name == "" {
		for _, ob := range scene.Objects {
			if ob.Type == rig.TypeArmature {
				return ob, nil
			}
		}
		if len(scene.Objects) > 0 {
			return scene.Objects[0], nil
		}
		return nil, fmt.Errorf("empty scene")
	}
	if ob := scene.Find(name); ob != nil {
		return ob, nil
	}
	return nil, fmt.Errorf("object not found: %v", name)
}

func needArgs(n int) {
	if flag.NArg() < n+1 {
		flag.Usage()
		os.Exit(1)
	}
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, usage, os.Args[0])
		flag.PrintDefaults()
	}
	scenePath := flag.String("scene", "", "scene file (.yaml)")
	rigName := flag.String("rig", "", "object name (default: first armature)")
	output := flag.String("out", "", "output scene file (default: overwrite -scene)")
	confPath := flag.String("config", "", "config file (.json)")
	offset := flag.Int("offset", -1, "Moho frame offset (default: config or 1)")
	useKey := flag.Bool("key", false, "insert keyframes")
	frame := flag.Int("frame", 1, "frame for keys and imports")
	useHead := flag.Bool("usehead", false, "import FaceShift head motion")
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		return
	}

	conf := &Config{}
	if *confPath != "" {
		var err error
		conf, err = LoadConfig(*confPath)
		if err != nil {
			log.Fatal("config error: ", err)
		}
	}
	if *offset < 0 {
		*offset = conf.GetMohoOffset()
	}

	reg, err := conf.LoadRegistry()
	if err != nil {
		log.Fatal(err)
	}
	engine := lipsync.NewEngine(reg)

	cmd := flag.Arg(0)
	switch cmd {
	case "layout":
		for _, row := range reg.Layout() {
			fmt.Println(strings.Join(row, "\t"))
		}
		return
	case "list":
		fmt.Println("visemes:", strings.Join(reg.VisemeNames(), " "))
		fmt.Println("mouth shapes:", strings.Join(reg.MouthShapes(), " "))
		return
	}

	if *scenePath == "" {
		log.Fatal("-scene required")
	}
	scene, err := rig.LoadScene(*scenePath)
	if err != nil {
		log.Fatal(err)
	}
	ob, err := selectObject(scene, *rigName)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("%s: %T", ob.Name, lipsync.SelectMode(ob))

	switch cmd {
	case "viseme":
		needArgs(1)
		err = engine.SetViseme(ob, flag.Arg(1), *useKey, *frame)
	case "moho":
		needArgs(1)
		err = engine.LoadMohoFile(ob, flag.Arg(1), *offset)
	case "delete":
		err = engine.DeleteLipsync(ob)
	case "bake":
		err = engine.BakeFaceAnim(ob)
	case "faceshift":
		needArgs(1)
		var m *faceshift.Motion
		m, err = faceshift.Load(flag.Arg(1), ob, *useHead)
		if err != nil {
			break
		}
		if m.Warning != "" {
			log.Println(m.Warning)
		}
		err = faceshift.AssignMotion(ob, m, nil)
	case "vmd":
		needArgs(1)
		var anim *mmd.Animation
		anim, err = loadAnimation(flag.Arg(1))
		if err != nil {
			break
		}
		var n int
		n, err = engine.ImportMorphs(ob, anim, conf.MorphNames(), *frame)
		log.Printf("%d morphs imported from %s", n, anim.Name)
	case "export":
		needArgs(2)
		var doc *gltf.Document
		doc, err = gltf.Open(flag.Arg(1))
		if err != nil {
			break
		}
		n := converter.AddShapeKeyAnimation(doc, ob.Name, ob.Meshes(), conf.AnimationOption())
		log.Printf("%d channels exported", n)
		err = gltf.SaveBinary(doc, flag.Arg(2))
		if err == nil {
			return
		}
	default:
		flag.Usage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatal(err)
	}

	ob.UpdateDrivers()
	out := *output
	if out == "" {
		out = *scenePath
	}
	log.Print("out: ", out)
	if err := rig.SaveScene(scene, out); err != nil {
		log.Fatal(err)
	}
}
