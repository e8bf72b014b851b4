package replay

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
)

var magic = [4]byte{'S', 'R', 'P', '1'}

// Replay records and plays back per-tick control commands. The header
// stores the RNG seed and tick rate so playback can rebuild an
// identical world.
type Replay struct {
	Seed     int64
	TickRate float64
	Commands []Command

	file   *os.File
	writer *bufio.Writer
}

// NewRecorder creates a replay file and writes its header
func NewRecorder(path string, seed int64, tickRate float64) (*Replay, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := bufio.NewWriter(f)
	r := &Replay{Seed: seed, TickRate: tickRate, file: f, writer: w}
	if err := binary.Write(w, binary.LittleEndian, magic); err != nil {
		f.Close()
		return nil, err
	}
	if err := binary.Write(w, binary.LittleEndian, seed); err != nil {
		f.Close()
		return nil, err
	}
	if err := binary.Write(w, binary.LittleEndian, tickRate); err != nil {
		f.Close()
		return nil, err
	}
	return r, nil
}

// Record appends one command, writing through to the file if recording
func (r *Replay) Record(cmd Command) error {
	r.Commands = append(r.Commands, cmd)
	if r.writer == nil {
		return nil
	}
	return cmd.Encode(r.writer)
}

// Close flushes and closes the replay file
func (r *Replay) Close() error {
	if r.writer != nil {
		r.writer.Flush()
	}
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// Load reads a replay file
func Load(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := bufio.NewReader(f)
	var m [4]byte
	if err := binary.Read(reader, binary.LittleEndian, &m); err != nil {
		return nil, fmt.Errorf("read replay header: %w", err)
	}
	if m != magic {
		return nil, fmt.Errorf("not a replay file: %s", path)
	}
	r := &Replay{}
	if err := binary.Read(reader, binary.LittleEndian, &r.Seed); err != nil {
		return nil, fmt.Errorf("read replay seed: %w", err)
	}
	if err := binary.Read(reader, binary.LittleEndian, &r.TickRate); err != nil {
		return nil, fmt.Errorf("read replay tick rate: %w", err)
	}
	for {
		var cmd Command
		if err := cmd.Decode(reader); err != nil {
			break
		}
		r.Commands = append(r.Commands, cmd)
	}
	return r, nil
}

// CommandsForTick returns all commands recorded on a tick
func (r *Replay) CommandsForTick(tick uint64) []Command {
	var result []Command
	for _, c := range r.Commands {
		if c.Tick == tick {
			result = append(result, c)
		}
	}
	return result
}
