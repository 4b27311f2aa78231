package speech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// FileTranscriber follows a text file that an external dictation tool appends
// to. Everything written after the stream starts is the transcript.
type FileTranscriber struct {
	Path   string
	Logger *zap.Logger
}

func (f *FileTranscriber) logger() *zap.Logger {
	if f.Logger == nil {
		return zap.NewNop()
	}
	return f.Logger
}

// RequestAuthorization grants access when the file's directory exists.
func (f *FileTranscriber) RequestAuthorization(context.Context) Authorization {
	if strings.TrimSpace(f.Path) == "" {
		return Denied
	}
	info, err := os.Stat(filepath.Dir(f.Path))
	if err != nil || !info.IsDir() {
		return Restricted
	}
	return Authorized
}

func (f *FileTranscriber) StartTranscription(ctx context.Context, _ Config) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			yield("", fmt.Errorf("create watcher: %w", err))
			return
		}
		defer func() { _ = watcher.Close() }()

		dir := filepath.Dir(f.Path)
		if err := watcher.Add(dir); err != nil {
			yield("", fmt.Errorf("watch %s: %w", dir, err))
			return
		}

		start, err := fileSize(f.Path)
		if err != nil {
			yield("", err)
			return
		}
		f.logger().Debug("transcript file watch started",
			zap.String("path", f.Path), zap.Int64("offset", start))

		last := ""
		name := filepath.Clean(f.Path)
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != name {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}

				text, offset, err := readFrom(f.Path, start)
				if err != nil {
					yield("", err)
					return
				}
				start = offset
				if text == last {
					continue
				}
				last = text
				if !yield(text, nil) {
					return
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				yield("", fmt.Errorf("watch transcript: %w", err))
				return
			}
		}
	}
}

func fileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("stat transcript: %w", err)
	}
	return info.Size(), nil
}

// readFrom returns the text after offset. A file that shrank below offset was
// truncated by its writer, so reading restarts at zero and that new offset is
// returned.
func readFrom(path string, offset int64) (string, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", offset, fmt.Errorf("open transcript: %w", err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return "", offset, fmt.Errorf("stat transcript: %w", err)
	}
	if info.Size() < offset {
		offset = 0
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return "", offset, fmt.Errorf("seek transcript: %w", err)
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return "", offset, fmt.Errorf("read transcript: %w", err)
	}
	return strings.TrimSpace(strings.ToValidUTF8(string(data), "\uFFFD")), offset, nil
}
