// Command ggedit is an interactive, menu driven front end for the ggedit
// image editor.
//
// Usage:
//
//	ggedit [-lang en|es] [-v] [-max-workers n] [-brightness-workers n] [image]
//
// When an image path is given it is loaded before the menu starts.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/message"

	"github.com/gogpu/ggedit"
	"github.com/gogpu/ggedit/internal/filter"
	"github.com/gogpu/ggedit/internal/parallel"
)

func main() {
	os.Exit(run(os.Stdin, os.Stdout, os.Stderr, os.Args[1:]))
}

// run executes the command and returns the process exit code.
func run(stdin io.Reader, stdout, stderr io.Writer, args []string) int {
	fs := flag.NewFlagSet("ggedit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		lang              = fs.String("lang", "en", "menu language (en, es)")
		verbose           = fs.Bool("v", false, "log every operation to stderr")
		maxWorkers        = fs.Int("max-workers", parallel.DefaultMaxWorkers, "maximum concurrent filter workers (0 = unlimited)")
		brightnessWorkers = fs.Int("brightness-workers", filter.DefaultBrightnessWorkers, "row workers used by brightness")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	p, err := newPrinter(*lang)
	if err != nil {
		fmt.Fprintf(stderr, "ggedit: invalid -lang %q: %v\n", *lang, err)
		return 2
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	ggedit.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	defer ggedit.SetLogger(nil)

	s := &session{
		ed:                ggedit.New(ggedit.WithMaxWorkers(*maxWorkers), ggedit.WithBrightnessWorkers(*brightnessWorkers)),
		in:                bufio.NewScanner(stdin),
		out:               stdout,
		p:                 p,
		brightnessWorkers: *brightnessWorkers,
	}
	defer func() { _ = s.ed.Close() }()

	if fs.NArg() > 0 {
		if !s.load(fs.Arg(0)) {
			return 1
		}
	}

	s.loop()
	return 0
}

// session is one interactive editing session over a single Editor.
type session struct {
	ed                *ggedit.Editor
	in                *bufio.Scanner
	out               io.Writer
	p                 *message.Printer
	brightnessWorkers int
}

// errInput marks a prompt answer that could not be parsed.
var errInput = errors.New("invalid input")

// loop shows the menu until the user quits or input ends.
func (s *session) loop() {
	for {
		s.p.Fprintf(s.out, msgMenu)
		line, ok := s.readLine()
		if !ok {
			return
		}
		option, err := strconv.Atoi(line)
		if err != nil {
			s.p.Fprintf(s.out, msgInvalidInput)
			continue
		}
		if option == 9 {
			s.p.Fprintf(s.out, msgGoodbye)
			return
		}
		if err := s.dispatch(option); err != nil {
			s.report(err)
		}
	}
}

func (s *session) dispatch(option int) error {
	switch option {
	case 1:
		path, err := s.askString(msgAskLoadPath)
		if err != nil {
			return err
		}
		s.load(path)
		return nil
	case 2:
		return s.showMatrix()
	case 3:
		return s.save()
	case 4:
		return s.brightness()
	case 5:
		return s.blur()
	case 6:
		return s.rotate()
	case 7:
		return s.sobel()
	case 8:
		return s.resize()
	default:
		s.p.Fprintf(s.out, msgInvalidOption)
		return nil
	}
}

// report prints err in the session language.
func (s *session) report(err error) {
	switch {
	case errors.Is(err, errInput):
		s.p.Fprintf(s.out, msgInvalidInput)
	case errors.Is(err, ggedit.ErrNoImage):
		s.p.Fprintf(s.out, msgNoImage)
	default:
		s.p.Fprintf(s.out, msgError, err)
	}
}

// load loads path and reports the outcome.
func (s *session) load(path string) bool {
	if err := s.ed.Load(path); err != nil {
		s.report(err)
		return false
	}
	kind := msgRGB
	if s.ed.Channels() == 1 {
		kind = msgGray
	}
	s.p.Fprintf(s.out, msgLoaded, size(s.ed.Width(), s.ed.Height()), s.ed.Channels(), s.p.Sprintf(kind))
	return true
}

func (s *session) showMatrix() error {
	if !s.ed.Loaded() {
		return ggedit.ErrNoImage
	}
	s.p.Fprintf(s.out, msgMatrixHeader, ggedit.DefaultMatrixRows)
	return s.ed.WriteMatrix(s.out, ggedit.DefaultMatrixRows)
}

func (s *session) save() error {
	if !s.ed.Loaded() {
		return ggedit.ErrNoImage
	}
	path, err := s.askString(msgAskSavePath)
	if err != nil {
		return err
	}
	if err := s.ed.Save(path); err != nil {
		return err
	}
	s.p.Fprintf(s.out, msgSaved, path)
	return nil
}

func (s *session) brightness() error {
	if !s.ed.Loaded() {
		return ggedit.ErrNoImage
	}
	delta, err := s.askInt(msgAskDelta)
	if err != nil {
		return err
	}
	if err := s.ed.Brightness(delta); err != nil {
		return err
	}
	kind := msgRGB
	if s.ed.Channels() == 1 {
		kind = msgGray
	}
	s.p.Fprintf(s.out, msgBrightness, s.brightnessWorkers, s.p.Sprintf(kind))
	return nil
}

func (s *session) blur() error {
	if !s.ed.Loaded() {
		return ggedit.ErrNoImage
	}
	kernel, err := s.askInt(msgAskKernel)
	if err != nil {
		return err
	}
	sigma, err := s.askFloat(msgAskSigma)
	if err != nil {
		return err
	}
	workers, err := s.askInt(msgAskWorkers)
	if err != nil {
		return err
	}
	if err := s.ed.GaussianBlur(kernel, sigma, workers); err != nil {
		return err
	}
	s.p.Fprintf(s.out, msgBlurred, kernel, sigma, workers)
	return nil
}

func (s *session) rotate() error {
	if !s.ed.Loaded() {
		return ggedit.ErrNoImage
	}
	angle, err := s.askFloat(msgAskAngle)
	if err != nil {
		return err
	}
	workers, err := s.askInt(msgAskWorkers)
	if err != nil {
		return err
	}
	if err := s.ed.Rotate(angle, workers); err != nil {
		return err
	}
	s.p.Fprintf(s.out, msgRotated, angle, size(s.ed.Width(), s.ed.Height()), workers)
	return nil
}

func (s *session) sobel() error {
	if !s.ed.Loaded() {
		return ggedit.ErrNoImage
	}
	workers, err := s.askInt(msgAskWorkers)
	if err != nil {
		return err
	}
	if err := s.ed.Sobel(workers); err != nil {
		return err
	}
	s.p.Fprintf(s.out, msgSobel, workers)
	return nil
}

func (s *session) resize() error {
	if !s.ed.Loaded() {
		return ggedit.ErrNoImage
	}
	width, err := s.askInt(msgAskWidth)
	if err != nil {
		return err
	}
	height, err := s.askInt(msgAskHeight)
	if err != nil {
		return err
	}
	workers, err := s.askInt(msgAskWorkers)
	if err != nil {
		return err
	}
	if err := s.ed.Resize(width, height, workers); err != nil {
		return err
	}
	s.p.Fprintf(s.out, msgResized, size(s.ed.Width(), s.ed.Height()), workers)
	return nil
}

// readLine returns the next input line without surrounding blanks.
func (s *session) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *session) askString(prompt string) (string, error) {
	s.p.Fprintf(s.out, prompt)
	line, ok := s.readLine()
	if !ok || line == "" {
		return "", errInput
	}
	return line, nil
}

func (s *session) askInt(prompt string) (int, error) {
	line, err := s.askString(prompt)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errInput, line)
	}
	return v, nil
}

func (s *session) askFloat(prompt string) (float64, error) {
	line, err := s.askString(prompt)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(line, 64)
	if err != nil || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: %q", errInput, line)
	}
	return v, nil
}

// size formats dimensions without locale digit grouping.
func size(width, height int) string {
	return strconv.Itoa(width) + "x" + strconv.Itoa(height)
}
