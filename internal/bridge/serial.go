package bridge

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"meshvr/internal/xr"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"go.bug.st/serial"
	"go.uber.org/zap"
)

// Sample is one parsed tracker line.
type Sample struct {
	Hand        xr.Hand
	Disconnect  bool
	Position    rl.Vector3
	Orientation mgl32.Quat
	Trigger     bool
	Grip        bool
}

// ParseLine parses "hand,px,py,pz,qx,qy,qz,qw,trigger,grip" or
// "hand,disconnect".
func ParseLine(line string) (Sample, error) {
	parts := strings.Split(strings.TrimSpace(line), ",")
	hand, err := xr.ParseHand(parts[0])
	if err != nil {
		return Sample{}, err
	}
	if len(parts) == 2 && strings.TrimSpace(parts[1]) == "disconnect" {
		return Sample{Hand: hand, Disconnect: true}, nil
	}
	if len(parts) != 10 {
		return Sample{}, fmt.Errorf("expected 10 values, got %d", len(parts))
	}

	var f [7]float32
	for i := range f {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i+1]), 32)
		if err != nil {
			return Sample{}, fmt.Errorf("invalid value %d: %w", i+1, err)
		}
		f[i] = float32(v)
	}
	trigger, err := parseFlag(parts[8])
	if err != nil {
		return Sample{}, fmt.Errorf("invalid trigger: %w", err)
	}
	grip, err := parseFlag(parts[9])
	if err != nil {
		return Sample{}, fmt.Errorf("invalid grip: %w", err)
	}
	return Sample{
		Hand:        hand,
		Position:    rl.Vector3{X: f[0], Y: f[1], Z: f[2]},
		Orientation: mgl32.Quat{W: f[6], V: mgl32.Vec3{f[3], f[4], f[5]}},
		Trigger:     trigger,
		Grip:        grip,
	}, nil
}

func parseFlag(s string) (bool, error) {
	switch strings.TrimSpace(s) {
	case "0":
		return false, nil
	case "1":
		return true, nil
	}
	return false, fmt.Errorf("want 0 or 1, got %q", s)
}

// sampleDecoder turns the tracker's full-state lines into edge events.
type sampleDecoder struct {
	live    [2]bool
	trigger [2]bool
	grip    [2]bool
}

func (d *sampleDecoder) events(s Sample) []xr.Event {
	h := s.Hand
	if s.Disconnect {
		if !d.live[h] {
			return nil
		}
		d.live[h], d.trigger[h], d.grip[h] = false, false, false
		return []xr.Event{{Type: xr.EventDisconnected, Hand: h}}
	}

	var out []xr.Event
	if !d.live[h] {
		d.live[h] = true
		out = append(out, xr.Event{Type: xr.EventConnected, Hand: h})
	}
	out = append(out, xr.Event{
		Type:           xr.EventPose,
		Hand:           h,
		Position:       s.Position,
		Orientation:    s.Orientation,
		HasOrientation: true,
	})
	if s.Trigger != d.trigger[h] {
		d.trigger[h] = s.Trigger
		out = append(out, xr.Event{Type: xr.EventTrigger, Hand: h, Pressed: s.Trigger})
	}
	if s.Grip != d.grip[h] {
		d.grip[h] = s.Grip
		out = append(out, xr.Event{Type: xr.EventGrip, Hand: h, Pressed: s.Grip})
	}
	return out
}

// lost disconnects every hand seen on a port that went away.
func (d *sampleDecoder) lost() []xr.Event {
	var out []xr.Event
	for _, h := range xr.Hands {
		out = append(out, d.events(Sample{Hand: h, Disconnect: true})...)
	}
	return out
}

// SerialSource reads tracker lines from a serial port, reopening it after
// errors.
type SerialSource struct {
	Port  string
	Baud  int
	Retry time.Duration

	events chan xr.Event
	log    *zap.Logger
	open   func(port string, baud int) (io.ReadCloser, error)
}

func NewSerialSource(port string, baud int, log *zap.Logger) *SerialSource {
	if log == nil {
		log = zap.NewNop()
	}
	return &SerialSource{
		Port:   port,
		Baud:   baud,
		Retry:  5 * time.Second,
		events: make(chan xr.Event, 256),
		log:    log,
		open:   openSerial,
	}
}

func openSerial(port string, baud int) (io.ReadCloser, error) {
	return serial.Open(port, &serial.Mode{BaudRate: baud})
}

func (s *SerialSource) Events() <-chan xr.Event {
	return s.events
}

// Run reads until ctx is done.
func (s *SerialSource) Run(ctx context.Context) error {
	for {
		port, err := s.open(s.Port, s.Baud)
		if err != nil {
			s.log.Warn("cannot open serial port, retrying",
				zap.String("port", s.Port), zap.Duration("retry", s.Retry), zap.Error(err))
		} else {
			s.log.Info("serial port opened", zap.String("port", s.Port), zap.Int("baud", s.Baud))
			s.read(ctx, port)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.Retry):
		}
	}
}

func (s *SerialSource) read(ctx context.Context, port io.ReadCloser) {
	stop := context.AfterFunc(ctx, func() { port.Close() })
	defer stop()
	defer port.Close()

	var dec sampleDecoder
	scanner := bufio.NewScanner(port)
	for scanner.Scan() {
		sample, err := ParseLine(scanner.Text())
		if err != nil {
			s.log.Debug("bad tracker line", zap.String("line", scanner.Text()), zap.Error(err))
			continue
		}
		for _, ev := range dec.events(sample) {
			if !s.emit(ctx, ev) {
				return
			}
		}
	}
	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		s.log.Warn("serial read failed", zap.Error(err))
	}
	for _, ev := range dec.lost() {
		select {
		case s.events <- ev:
		default:
			s.log.Warn("event queue full, dropping disconnect", zap.Stringer("hand", ev.Hand))
		}
	}
	s.log.Info("serial port closed", zap.String("port", s.Port))
}

func (s *SerialSource) emit(ctx context.Context, ev xr.Event) bool {
	select {
	case s.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
