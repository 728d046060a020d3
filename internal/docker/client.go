package docker

import (
	"bufio"
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"time"

	"github.com/docker/docker/api/types/build"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/jsonmessage"
	"github.com/docker/go-connections/tlsconfig"
	"golang.org/x/term"
)

// ClientOptions configures the engine connection.
type ClientOptions struct {
	// Host overrides DOCKER_HOST, e.g. "tcp://10.0.0.5:2376".
	Host string

	// TLS client files. All empty disables explicit TLS configuration.
	TLSCACert string
	TLSCert   string
	TLSKey    string
}

func (o ClientOptions) tlsEnabled() bool {
	return o.TLSCACert != "" || o.TLSCert != "" || o.TLSKey != ""
}

// Client wraps the Docker SDK client.
type Client struct {
	api DockerAPI
}

// NewClient creates a new Docker client connection.
func NewClient(opts ClientOptions) (*Client, error) {
	clientOpts := []client.Opt{client.FromEnv, client.WithAPIVersionNegotiation()}

	if opts.tlsEnabled() {
		tc, err := tlsconfig.Client(tlsconfig.Options{
			CAFile:   opts.TLSCACert,
			CertFile: opts.TLSCert,
			KeyFile:  opts.TLSKey,
		})
		if err != nil {
			return nil, fmt.Errorf("load TLS configuration: %w", err)
		}
		clientOpts = append(clientOpts, client.WithHTTPClient(newHTTPClient(tc)))

		// The replaced transport must be configured for the host again.
		if opts.Host == "" {
			opts.Host = os.Getenv(client.EnvOverrideHost)
		}
		if opts.Host == "" {
			opts.Host = client.DefaultDockerHost
		}
	}

	if opts.Host != "" {
		clientOpts = append(clientOpts, client.WithHost(opts.Host))
	}

	cli, err := client.NewClientWithOpts(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create docker client: %w", err)
	}

	return &Client{api: cli}, nil
}

func newHTTPClient(tc *tls.Config) *http.Client {
	return &http.Client{
		Transport:     &http.Transport{TLSClientConfig: tc},
		CheckRedirect: client.CheckRedirect,
	}
}

// NewClientWithAPI creates a new Docker client with a custom API implementation.
// This is primarily used for testing with mock implementations.
func NewClientWithAPI(api DockerAPI) *Client {
	return &Client{api: api}
}

// Ping tests the connection to the Docker daemon.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := c.api.Ping(ctx)
	if err != nil {
		return fmt.Errorf("ping docker: %w", err)
	}

	return nil
}

// Close closes the Docker client connection.
func (c *Client) Close() error {
	if c.api != nil {
		return c.api.Close()
	}
	return nil
}

// BuildRequest describes a single image build.
type BuildRequest struct {
	// Context is the tar stream of the build context.
	Context io.Reader

	// Tags are applied by the engine. The first one identifies the build in errors.
	Tags []string

	BuildArgs map[string]*string
	Labels    map[string]string
	NoCache   bool
	Pull      bool
}

func (r BuildRequest) ref() string {
	if len(r.Tags) == 0 {
		return "<untagged>"
	}
	return r.Tags[0]
}

// Build runs an image build and relays the build log to out.
// It returns the ID of the built image.
func (c *Client) Build(ctx context.Context, req BuildRequest, out io.Writer) (string, error) {
	resp, err := c.api.ImageBuild(ctx, req.Context, build.ImageBuildOptions{
		Tags:        req.Tags,
		BuildArgs:   req.BuildArgs,
		Labels:      req.Labels,
		NoCache:     req.NoCache,
		PullParent:  req.Pull,
		Remove:      true,
		ForceRemove: true,
	})
	if err != nil {
		return "", &BuildError{Op: "build", Ref: req.ref(), Err: err}
	}
	defer resp.Body.Close()

	watcher := &idWatcher{w: out}
	var auxID string
	fd, isTerm := terminal(out)

	err = jsonmessage.DisplayJSONMessagesStream(resp.Body, watcher, fd, isTerm, func(msg jsonmessage.JSONMessage) {
		if id := auxImageID(msg); id != "" {
			auxID = id
		}
	})
	watcher.flush()
	if err != nil {
		return "", &BuildError{Op: "build", Ref: req.ref(), Err: err}
	}

	switch {
	case auxID != "":
		return auxID, nil
	case watcher.id != "":
		return watcher.id, nil
	default:
		return "", &BuildError{Op: "build", Ref: req.ref(), Err: ErrNoImageID}
	}
}

// Tag adds ref to the image identified by imageID.
func (c *Client) Tag(ctx context.Context, imageID, ref string) error {
	if err := c.api.ImageTag(ctx, imageID, ref); err != nil {
		return &BuildError{Op: "tag", Ref: ref, Err: err}
	}
	return nil
}

// auxImageID extracts the image ID from a build result aux message.
func auxImageID(msg jsonmessage.JSONMessage) string {
	if msg.Aux == nil {
		return ""
	}
	var result struct {
		ID string `json:"ID"`
	}
	if err := json.Unmarshal(*msg.Aux, &result); err != nil {
		return ""
	}
	return result.ID
}

func terminal(w io.Writer) (uintptr, bool) {
	f, ok := w.(*os.File)
	if !ok {
		return 0, false
	}
	return f.Fd(), term.IsTerminal(int(f.Fd()))
}

var successfullyBuilt = regexp.MustCompile(`^Successfully built ([0-9a-f]+)\s*$`)

// idWatcher passes the build log through and remembers the image ID announced
// by the classic builder's final "Successfully built" line.
type idWatcher struct {
	w   io.Writer
	buf bytes.Buffer
	id  string
}

func (w *idWatcher) Write(p []byte) (int, error) {
	w.buf.Write(p)
	w.scan(false)
	return w.w.Write(p)
}

func (w *idWatcher) flush() {
	w.scan(true)
}

func (w *idWatcher) scan(final bool) {
	data := w.buf.Bytes()
	last := bytes.LastIndexByte(data, '\n')
	if last < 0 && !final {
		return
	}
	complete := data
	if !final {
		complete = data[:last+1]
	}

	sc := bufio.NewScanner(bytes.NewReader(complete))
	for sc.Scan() {
		if m := successfullyBuilt.FindStringSubmatch(sc.Text()); m != nil {
			w.id = m[1]
		}
	}

	w.buf.Next(len(complete))
}
