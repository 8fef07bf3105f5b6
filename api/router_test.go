package api

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-wayout/animation"
	"github.com/beka-birhanu/vinom-wayout/api/i"
	"github.com/beka-birhanu/vinom-wayout/api/identity"
	mazeapi "github.com/beka-birhanu/vinom-wayout/api/maze"
	"github.com/beka-birhanu/vinom-wayout/infrastruture/lock"
	logger "github.com/beka-birhanu/vinom-wayout/infrastruture/log"
	"github.com/beka-birhanu/vinom-wayout/infrastruture/repo"
	"github.com/beka-birhanu/vinom-wayout/infrastruture/token"
	"github.com/beka-birhanu/vinom-wayout/maze"
	"github.com/beka-birhanu/vinom-wayout/service"
	"github.com/beka-birhanu/vinom-wayout/traversal"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMaze(size int) (*maze.Maze, error) {
	rows := make([]string, size)
	for r := range rows {
		rows[r] = strings.Repeat(".", size)
	}
	return maze.FromRows(rows)
}

func TestServeStopsStreamingRuns(t *testing.T) {
	gin.SetMode(gin.TestMode)

	lg, err := logger.New("TEST", "", io.Discard)
	require.NoError(t, err)
	manager, err := service.NewSessionManager(&service.Config{
		MazeFactory: openMaze,
		Locker:      lock.NewMemoryRunLocker(),
		Reports:     repo.NewMemoryReportRepo(0),
		Timing:      animation.Timing{StepDelay: 200 * time.Millisecond},
		Logger:      lg,
	})
	require.NoError(t, err)

	tokenizer, err := token.NewJwtService("test-secret", "test")
	require.NoError(t, err)
	mazes, err := mazeapi.NewController(mazeapi.Config{
		Sessions:         manager,
		Tokenizer:        tokenizer,
		DefaultAlgorithm: traversal.DFS,
	})
	require.NoError(t, err)

	router := NewRouter(Config{
		BaseURL:                 "/api",
		Controllers:             []i.Controller{mazes},
		AuthorizationMiddleware: identity.Authorize(tokenizer),
		OnShutdown:              manager.StopAll,
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	base := "http://" + ln.Addr().String()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	served := make(chan error, 1)
	go func() { served <- router.Serve(ctx, ln) }()

	body, _ := json.Marshal(mazeapi.CreateMazeRequest{Size: 10})
	resp, err := http.Post(base+"/api/v1/mazes", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	var created mazeapi.CreateMazeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/api/v1/mazes/%s/run", base, created.ID), nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+created.Token)
	stream, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer stream.Body.Close()
	require.Equal(t, http.StatusOK, stream.StatusCode)

	reader := bufio.NewReader(stream.Body)
	first, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event:visit\n", first)

	stoppedAt := time.Now()
	cancel()

	select {
	case err := <-served:
		assert.NoError(t, err)
		assert.Less(t, time.Since(stoppedAt), shutdownTimeout/2)
	case <-time.After(shutdownTimeout):
		t.Fatal("server did not stop while a run was streaming")
	}

	rest, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Contains(t, string(rest), "event:result")
	assert.Contains(t, string(rest), `"interrupted":true`)
	assert.Contains(t, string(rest), service.InterruptedMessage)
}
