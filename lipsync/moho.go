package lipsync

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/binzume/lipsync/rig"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// MalformedLineError reports a Moho record whose frame is not an integer.
type MalformedLineError struct {
	Line int
	Text string
	Err  error
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("moho: line %d: malformed record %q: %v", e.Line, e.Text, e.Err)
}

func (e *MalformedLineError) Unwrap() error {
	return e.Err
}

// LoadMoho reads "<frame> <symbol>" records and keys the mapped viseme of each at frame+offset.
// Lines with fewer than two tokens are skipped. An unknown symbol aborts the load;
// frames keyed before the failure are kept.
func (e *Engine) LoadMoho(ob *rig.Object, r io.Reader, offset int) error {
	if err := e.enter(Loading); err != nil {
		return err
	}
	defer e.leave()
	if ob == nil {
		return nil
	}

	s := bufio.NewScanner(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	line := 0
	for s.Scan() {
		line++
		words := strings.Fields(s.Text())
		if len(words) < 2 {
			continue
		}
		frame, err := strconv.Atoi(words[0])
		if err != nil {
			return &MalformedLineError{Line: line, Text: s.Text(), Err: err}
		}
		vis, err := e.Registry.ResolveMoho(words[1])
		if err != nil {
			return fmt.Errorf("moho: line %d: %w", line, err)
		}
		if err := e.SetViseme(ob, vis, true, frame+offset); err != nil {
			return fmt.Errorf("moho: line %d: %w", line, err)
		}
	}
	return s.Err()
}

func (e *Engine) LoadMohoFile(ob *rig.Object, path string, offset int) error {
	r, err := os.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()
	if err := e.LoadMoho(ob, r, offset); err != nil {
		return err
	}
	e.logf("Moho file %s loaded", path)
	return nil
}
