package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/StormKing969/movie-review-app/internal/providers"
	"github.com/StormKing969/movie-review-app/internal/session"
	"github.com/StormKing969/movie-review-app/internal/structures"
	"github.com/spf13/cast"
)

// Console drives a session from line-oriented input.
type Console struct {
	session      *session.Session
	logger       providers.Logger
	imageBaseURL string

	mu          sync.Mutex
	out         io.Writer
	listVersion uint64
}

func NewConsole(conf *structures.Config, sess *session.Session, logger providers.Logger) *Console {
	return &Console{
		session:      sess,
		logger:       logger,
		imageBaseURL: conf.Metadata.ImageBaseURL,
	}
}

// Run reads commands until /quit, end of input or ctx is done.
func (c *Console) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.out = out
	c.session.SetListener(c.onChange)
	defer c.session.SetListener(nil)

	c.session.Start()
	c.print(func(w io.Writer) {
		renderTrending(w, c.session.Snapshot().Trending)
		fmt.Fprintln(w, helpText)
	})

	lines := make(chan string)
	errs := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errs <- scanner.Err()
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return <-errs
			}
			if quit := c.handle(ctx, line); quit {
				return nil
			}
		}
	}
}

func (c *Console) handle(ctx context.Context, line string) bool {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	switch cmd {
	case "/quit", "/exit":
		return true
	case "/help":
		c.print(func(w io.Writer) { fmt.Fprintln(w, helpText) })
	case "/trending":
		c.print(func(w io.Writer) { renderTrending(w, c.session.Snapshot().Trending) })
	case "/back":
		c.session.Back()
		st := c.session.Snapshot()
		c.print(func(w io.Writer) { renderMovies(w, st.Movies, st.ErrorMessage, c.imageBaseURL) })
	case "/open":
		c.open(ctx, arg)
	default:
		if strings.HasPrefix(cmd, "/") {
			c.print(func(w io.Writer) { fmt.Fprintf(w, "unknown command %s\n", cmd) })
			return false
		}
		c.session.Type(strings.TrimSpace(line))
	}
	return false
}

func (c *Console) open(ctx context.Context, arg string) {
	id, err := cast.ToIntE(strings.TrimSpace(arg))
	if err != nil || id <= 0 {
		c.print(func(w io.Writer) { fmt.Fprintf(w, "invalid movie id %q\n", arg) })
		return
	}
	req, ok := c.session.RequestFor(id)
	if !ok {
		c.print(func(w io.Writer) { fmt.Fprintf(w, "movie %d is not on this page\n", id) })
		return
	}

	if navigated, err := c.session.Open(ctx, req); !navigated {
		c.logger.Warnf(providers.TypeSession, "open %d: %v", id, err)
		c.print(func(w io.Writer) { fmt.Fprintln(w, "Error fetching movie details, cannot navigate to movie page.") })
		return
	}
	st := c.session.Snapshot()
	c.print(func(w io.Writer) {
		fmt.Fprintf(w, "%s\n", st.Route)
		renderDetail(w, st.Selected, st.ViewCount, c.imageBaseURL)
	})
}

// onChange prints the movie list whenever a search settles on the home page.
func (c *Console) onChange(st session.State) {
	c.mu.Lock()
	if st.ListVersion == c.listVersion || st.IsLoading {
		c.mu.Unlock()
		return
	}
	c.listVersion = st.ListVersion
	c.mu.Unlock()

	if st.Route != session.HomeRoute {
		return
	}
	c.print(func(w io.Writer) { renderMovies(w, st.Movies, st.ErrorMessage, c.imageBaseURL) })
}

func (c *Console) print(fn func(w io.Writer)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.out)
}

// Close stops the underlying session.
func (c *Console) Close() {
	c.session.Close()
}
