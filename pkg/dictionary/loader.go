package dictionary

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bastiangx/wordjumble/internal/utils"
	"github.com/bastiangx/wordjumble/pkg/config"
	"github.com/charmbracelet/log"
	"github.com/tidwall/gjson"
)

// ChunkInfo contains metadata about a chunk file
type ChunkInfo struct {
	ID        int
	Filename  string
	WordCount int
}

// Load reads a frequency table from path and builds an immutable Index.
// Every failure is a ConfigurationError: no puzzle can be solved without it.
func Load(path string, maxScore int) (*Index, error) {
	start := time.Now()

	format, err := DetectFileFormat(path)
	if err != nil {
		return nil, config.Wrap(path, err)
	}

	b := NewBuilder(maxScore)
	switch format {
	case FormatJSON:
		var data []byte
		if data, err = os.ReadFile(path); err == nil {
			err = ReadJSON(b, data)
		}
	case FormatText:
		var file *os.File
		if file, err = os.Open(path); err == nil {
			err = ReadText(b, file)
			file.Close()
		}
	case FormatChunk:
		if utils.IsDir(path) {
			err = loadChunkDir(b, path)
		} else {
			err = readChunk(b, path)
		}
	}
	if err != nil {
		return nil, config.Wrap(path, err)
	}
	if b.Len() == 0 {
		return nil, config.Errorf(path, "dictionary has no words")
	}

	idx := b.Build()
	log.Debugf("Loaded %s (%s) with %s words in %v",
		path, format, utils.FormatCount(idx.Len()), time.Since(start))
	return idx, nil
}

// ReadJSON adds every entry of a {"word": freq} object to b.
func ReadJSON(b *Builder, data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return fmt.Errorf("expected a JSON object of word -> frequency")
	}

	var ferr error
	root.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.Number {
			ferr = fmt.Errorf("word %q: frequency is %s, want a number", key.String(), value.Type)
			return false
		}
		if f := value.Float(); f != math.Trunc(f) {
			ferr = fmt.Errorf("word %q: frequency %v is not an integer", key.String(), f)
			return false
		}
		if err := b.Add(key.String(), int(value.Int())); err != nil {
			ferr = err
			return false
		}
		return true
	})
	return ferr
}

// ReadText adds "word [freq]" lines to b. A missing frequency counts as unknown (0).
// Blank lines and lines starting with # are skipped.
func ReadText(b *Builder, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		freq := 0
		switch len(fields) {
		case 1:
		case 2:
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				return fmt.Errorf("line %d: bad frequency %q: %w", lineNo, fields[1], err)
			}
			freq = n
		default:
			return fmt.Errorf("line %d: expected \"word freq\", got %q", lineNo, line)
		}
		if err := b.Add(fields[0], freq); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	return scanner.Err()
}

// GetAvailableChunks scans dir for chunk files, sorted by id.
func GetAvailableChunks(dirPath string) ([]ChunkInfo, error) {
	files, err := filepath.Glob(filepath.Join(dirPath, "dict_*.bin"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan for chunk files: %w", err)
	}

	var chunks []ChunkInfo
	for _, file := range files {
		idStr := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(file), "dict_"), ".bin")
		id, err := strconv.Atoi(idStr)
		if err != nil {
			log.Warnf("Skipping chunk with unexpected name: %s", file)
			continue
		}
		count, err := ValidateChunkFile(file)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, ChunkInfo{ID: id, Filename: file, WordCount: count})
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].ID < chunks[j].ID
	})
	return chunks, nil
}

func loadChunkDir(b *Builder, dirPath string) error {
	chunks, err := GetAvailableChunks(dirPath)
	if err != nil {
		return err
	}
	if len(chunks) == 0 {
		return fmt.Errorf("no chunk files found in %s", dirPath)
	}
	log.Debugf("Found %d chunk files", len(chunks))

	for _, chunk := range chunks {
		if err := readChunk(b, chunk.Filename); err != nil {
			return err
		}
		log.Debugf("Chunk %d loaded: %d words", chunk.ID, chunk.WordCount)
	}
	return nil
}

// readChunk loads one chunk: int32 count, then (u16 len, word, u32 freq) entries.
func readChunk(b *Builder, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open chunk file %s: %w", filename, err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)

	var totalEntries int32
	if err := binary.Read(reader, binary.LittleEndian, &totalEntries); err != nil {
		return fmt.Errorf("failed to read chunk header: %w", err)
	}
	if totalEntries < 0 || totalEntries > maxChunkWords {
		return fmt.Errorf("invalid word count in %s: %d", filename, totalEntries)
	}

	for i := 0; i < int(totalEntries); i++ {
		var wordLen uint16
		if err := binary.Read(reader, binary.LittleEndian, &wordLen); err != nil {
			return fmt.Errorf("%s entry %d: failed to read word length: %w", filename, i, err)
		}
		wordBytes := make([]byte, wordLen)
		if _, err := io.ReadFull(reader, wordBytes); err != nil {
			return fmt.Errorf("%s entry %d: failed to read word: %w", filename, i, err)
		}
		var freq uint32
		if err := binary.Read(reader, binary.LittleEndian, &freq); err != nil {
			return fmt.Errorf("%s entry %d: failed to read frequency: %w", filename, i, err)
		}
		if freq > math.MaxInt32 {
			return fmt.Errorf("%s entry %d: frequency %d out of range", filename, i, freq)
		}
		if err := b.Add(string(wordBytes), int(freq)); err != nil {
			return fmt.Errorf("%s entry %d: %w", filename, i, err)
		}
	}
	return nil
}

type chunkEntry struct {
	word string
	freq int
}

// SaveChunks exports idx as dict_0001.bin, dict_0002.bin, ... under dir,
// chunkSize words per file, preserving insertion order.
func SaveChunks(idx *Index, dir string, chunkSize int) ([]string, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	// the reader rejects frequencies above MaxInt32, check before writing anything
	err := idx.Each(func(word string, freq int) error {
		if freq > math.MaxInt32 {
			return fmt.Errorf("word %q: frequency %d does not fit the chunk format", word, freq)
		}
		if len(word) > math.MaxUint16 {
			return fmt.Errorf("word too long for chunk format: %d bytes", len(word))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := utils.EnsureDir(dir); err != nil {
		return nil, err
	}

	var files []string
	batch := make([]chunkEntry, 0, chunkSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		name := filepath.Join(dir, fmt.Sprintf("dict_%04d.bin", len(files)+1))
		if err := writeChunk(name, batch); err != nil {
			return err
		}
		files = append(files, name)
		batch = batch[:0]
		return nil
	}

	err = idx.Each(func(word string, freq int) error {
		batch = append(batch, chunkEntry{word, freq})
		if len(batch) == chunkSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return files, err
	}
	return files, flush()
}

func writeChunk(filename string, entries []chunkEntry) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating chunk file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if err := binary.Write(writer, binary.LittleEndian, int32(len(entries))); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, e := range entries {
		if err := binary.Write(writer, binary.LittleEndian, uint16(len(e.word))); err != nil {
			return fmt.Errorf("writing word length: %w", err)
		}
		if _, err := writer.WriteString(e.word); err != nil {
			return fmt.Errorf("writing word %s: %w", e.word, err)
		}
		if err := binary.Write(writer, binary.LittleEndian, uint32(e.freq)); err != nil {
			return fmt.Errorf("writing frequency for word %s: %w", e.word, err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flushing chunk: %w", err)
	}
	return file.Close()
}
