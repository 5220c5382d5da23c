package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/tourplan/internal/client/changeset"
	"github.com/iudanet/tourplan/internal/client/iocli"
	"github.com/iudanet/tourplan/internal/client/snapshot"
	"github.com/iudanet/tourplan/internal/client/sync"
	"github.com/iudanet/tourplan/internal/config"
	"github.com/iudanet/tourplan/internal/models"
)

type authFunc func(ctx context.Context, username, password string) (string, error)

func (f authFunc) Login(ctx context.Context, username, password string) (string, error) {
	return f(ctx, username, password)
}

func testConfig() *config.ClientConfig {
	return &config.ClientConfig{ServerURL: "http://plan.test", Token: "env-token", CallTimeout: time.Second}
}

// testDeps собирает зависимости, печатающие в буфер
func testDeps(out *bytes.Buffer, svc sync.Service) Deps {
	return Deps{
		IO:     iocli.NewStream(strings.NewReader(""), out),
		Stderr: io.Discard,
		NewService: func(opts *RootOptions, logger *slog.Logger) sync.Service {
			return svc
		},
		NewAuthenticator: func(opts *RootOptions) Authenticator {
			return authFunc(func(ctx context.Context, username, password string) (string, error) {
				return "", errors.New("unexpected login")
			})
		},
	}
}

func run(t *testing.T, deps Deps, args ...string) error {
	t.Helper()
	cmd := NewRootCommand(testConfig(), deps)
	cmd.SetArgs(args)
	return cmd.Execute()
}

// testSchedule один день, один тур с визитом и поездкой, клиент 6 без визита
func testSchedule() *snapshot.Snapshot {
	start := time.Date(2024, 12, 6, 9, 0, 0, 0, time.UTC)
	s := snapshot.New()
	s.Workers.Put(&models.Worker{ID: 7, Name: "Anna"})
	s.WorkerAvailabilities.Put(&models.WorkerAvailability{ID: 1, WorkerID: 7, Start: start, End: start.Add(8 * time.Hour)})
	s.Locations.Put(&models.Location{ID: 3, Name: "Depot"})
	s.Clients.Put(&models.Client{ID: 5, Name: "Müller", VisitLocationID: 3})
	s.Clients.Put(&models.Client{ID: 6, Name: "Schmidt", VisitLocationID: 3})
	s.Tours.Put(&models.Tour{ID: 1, Name: "Morning", Date: "2024-12-06", WorkerIDs: []int64{7}, ElementIDs: []int64{11, 12}})
	s.TourElements.Put(&models.TourElement{ID: 11, TourID: 1, Type: models.TourElementVisit, ClientID: models.ClientRef(5), Start: start, End: start.Add(time.Hour)})
	s.TourElements.Put(&models.TourElement{ID: 12, TourID: 1, Type: models.TourElementDrive, Start: start.Add(time.Hour), End: start.Add(90 * time.Minute)})
	return s
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand(testConfig(), DefaultDeps(nil))
	require.NotNil(t, cmd)
	assert.Equal(t, "tourplan-client", cmd.Use)
	assert.True(t, cmd.SilenceUsage)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand(testConfig(), DefaultDeps(nil))
	commands := []string{"login", "logout", "status", "apply", "version"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand(testConfig(), DefaultDeps(nil))

	serverFlag := cmd.PersistentFlags().Lookup("server")
	require.NotNil(t, serverFlag)
	assert.Equal(t, "http://plan.test", serverFlag.DefValue)

	tokenFlag := cmd.PersistentFlags().Lookup("token")
	require.NotNil(t, tokenFlag)
	assert.Equal(t, "env-token", tokenFlag.DefValue)

	timeoutFlag := cmd.PersistentFlags().Lookup("timeout")
	require.NotNil(t, timeoutFlag)
	assert.Equal(t, "1s", timeoutFlag.DefValue)

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestInvalidFlags(t *testing.T) {
	var out bytes.Buffer

	err := run(t, testDeps(&out, &sync.ServiceMock{}), "version", "--format", "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")

	err = run(t, testDeps(&out, &sync.ServiceMock{}), "version", "--timeout", "0s")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(t, testDeps(&out, &sync.ServiceMock{}), "version"))
	assert.Contains(t, out.String(), "Build version: N/A")

	out.Reset()
	require.NoError(t, run(t, testDeps(&out, &sync.ServiceMock{}), "version", "--format", "yaml"))
	assert.Contains(t, out.String(), "version: N/A")
	assert.Contains(t, out.String(), "go_version:")
}

func TestLoginCommand(t *testing.T) {
	var out bytes.Buffer
	mockIO := &iocli.IOMock{
		ReadInputFunc: func(prompt string) (string, error) {
			return "dispatcher", nil
		},
		ReadPasswordFunc: func(prompt string) (string, error) {
			return "secret", nil
		},
		PrintlnFunc: func(a ...any) {
			fmt.Fprintln(&out, a...)
		},
		PrintfFunc: func(format string, a ...any) {
			fmt.Fprintf(&out, format, a...)
		},
		WriteFunc: func(p []byte) (int, error) {
			return out.Write(p)
		},
	}

	var gotUser, gotPassword, gotServer string
	deps := testDeps(&out, &sync.ServiceMock{})
	deps.IO = mockIO
	deps.NewAuthenticator = func(opts *RootOptions) Authenticator {
		gotServer = opts.Server
		return authFunc(func(ctx context.Context, username, password string) (string, error) {
			gotUser, gotPassword = username, password
			return "tok-123", nil
		})
	}

	require.NoError(t, run(t, deps, "login", "--server", "http://other.test"))

	assert.Equal(t, "dispatcher", gotUser)
	assert.Equal(t, "secret", gotPassword)
	assert.Equal(t, "http://other.test", gotServer)
	assert.Contains(t, out.String(), "Token: tok-123")
	assert.Len(t, mockIO.ReadInputCalls(), 1)
	assert.Len(t, mockIO.ReadPasswordCalls(), 1)
}

func TestLoginCommand_Errors(t *testing.T) {
	t.Run("invalid username", func(t *testing.T) {
		var out bytes.Buffer
		deps := testDeps(&out, &sync.ServiceMock{})
		deps.IO = iocli.NewStream(strings.NewReader("night shift\n"), &out)

		err := run(t, deps, "login")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid username")
	})

	t.Run("rejected credentials", func(t *testing.T) {
		var out bytes.Buffer
		deps := testDeps(&out, &sync.ServiceMock{})
		deps.IO = iocli.NewStream(strings.NewReader("wrong\n"), &out)
		deps.NewAuthenticator = func(opts *RootOptions) Authenticator {
			return authFunc(func(ctx context.Context, username, password string) (string, error) {
				return "", errors.New("unable to log in with provided credentials")
			})
		}

		err := run(t, deps, "login", "--username", "dispatcher")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unable to log in")
	})
}

func TestStatusCommand(t *testing.T) {
	working := testSchedule()
	svc := &sync.ServiceMock{
		FetchFunc: func(ctx context.Context) (*sync.FetchReport, error) {
			return &sync.FetchReport{
				Loaded:          map[models.Kind]int{models.KindWorker: 1},
				Failed:          map[models.Kind]error{models.KindClientAvailability: errors.New("boom")},
				DrivingTimesErr: errors.New("matrix unavailable"),
			}, nil
		},
		WorkingFunc: func() *snapshot.Snapshot { return working },
	}

	var out bytes.Buffer
	require.NoError(t, run(t, testDeps(&out, svc), "status"))

	text := out.String()
	assert.Contains(t, text, "2024-12-06 (1 tours)")
	assert.Contains(t, text, "#1 Morning  workers: Anna  visits: 1  drive: 30m0s")
	assert.Contains(t, text, "Visits: 1")
	assert.Contains(t, text, "Unassigned clients: 6")
	assert.Contains(t, text, "clientavailability: boom")
	assert.Contains(t, text, "drivingtimematrix: matrix unavailable")
	assert.NotContains(t, text, "Warnings")
	assert.Len(t, svc.FetchCalls(), 1)
}

func TestStatusCommand_YAMLAndWarnings(t *testing.T) {
	working := testSchedule()
	// тур ссылается на элемент, которого нет
	tour, _ := working.Tours.Get(1)
	tour.ElementIDs = append(tour.ElementIDs, 99)

	svc := &sync.ServiceMock{
		FetchFunc: func(ctx context.Context) (*sync.FetchReport, error) {
			return &sync.FetchReport{}, nil
		},
		WorkingFunc: func() *snapshot.Snapshot { return working },
	}

	var out bytes.Buffer
	require.NoError(t, run(t, testDeps(&out, svc), "status", "--format", "yaml"))

	text := out.String()
	assert.Contains(t, text, "2024-12-06")
	assert.Contains(t, text, "drive_time: 30m0s")
	assert.Contains(t, text, "unassigned_clients:")
	assert.Contains(t, text, "tour 1 lists elements")
}

func TestStatusCommand_FetchError(t *testing.T) {
	svc := &sync.ServiceMock{
		FetchFunc: func(ctx context.Context) (*sync.FetchReport, error) {
			return nil, snapshot.ErrNothingFetched
		},
	}

	var out bytes.Buffer
	err := run(t, testDeps(&out, svc), "status")
	assert.ErrorIs(t, err, snapshot.ErrNothingFetched)
}

const applyPlan = `
workers:
  upsert:
    - name: Nina
  remove: [7]
`

func writePlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// applyService мок, считающий changeset по настоящим снимкам
func applyService(result *sync.UploadResult, saveErr error) (*sync.ServiceMock, *snapshot.Snapshot) {
	original := testSchedule()
	working := original.Clone()
	svc := &sync.ServiceMock{
		FetchFunc: func(ctx context.Context) (*sync.FetchReport, error) {
			return &sync.FetchReport{}, nil
		},
		WorkingFunc: func() *snapshot.Snapshot { return working },
		ChangesetFunc: func() (*changeset.Changeset, error) {
			return changeset.Compute(original, working), nil
		},
		SaveFunc: func(ctx context.Context) (*sync.UploadResult, error) {
			return result, saveErr
		},
	}
	return svc, working
}

func TestApplyCommand(t *testing.T) {
	svc, working := applyService(&sync.UploadResult{
		SuccessCount: 7,
		Kinds:        []sync.KindResult{{Kind: models.KindWorker, Created: 1, Destroyed: 1}},
	}, nil)

	var out bytes.Buffer
	require.NoError(t, run(t, testDeps(&out, svc), "apply", writePlan(t, applyPlan)))

	text := out.String()
	assert.Contains(t, text, "Plan applied: 1 added, 0 updated, 1 removed")
	assert.Contains(t, text, "Changes: worker +1 ~0 -1")
	assert.Contains(t, text, "Uploaded cleanly: 7 kinds")
	assert.Len(t, svc.SaveCalls(), 1)

	// сотрудник удален из тура вместе с записью
	tour, _ := working.Tours.Get(1)
	assert.Empty(t, tour.WorkerIDs)
}

func TestApplyCommand_DryRun(t *testing.T) {
	svc, _ := applyService(nil, nil)

	var out bytes.Buffer
	require.NoError(t, run(t, testDeps(&out, svc), "apply", "--dry-run", "--format", "yaml", writePlan(t, applyPlan)))

	assert.Contains(t, out.String(), "dry_run: true")
	assert.Contains(t, out.String(), "kind: worker")
	assert.Empty(t, svc.SaveCalls())
}

func TestApplyCommand_Rejected(t *testing.T) {
	svc, _ := applyService(&sync.UploadResult{
		SuccessCount: 6,
		Errors:       []string{"worker -1 rejected (400): name: This field may not be blank."},
		Kinds:        []sync.KindResult{{Kind: models.KindWorker, Errors: []string{"x"}}},
	}, nil)

	var out bytes.Buffer
	err := run(t, testDeps(&out, svc), "apply", writePlan(t, applyPlan))
	assert.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, out.String(), "Rejected records:")
	assert.Contains(t, out.String(), "name: This field may not be blank.")
}

func TestApplyCommand_UploadFailed(t *testing.T) {
	svc, _ := applyService(&sync.UploadResult{}, errors.New("connection refused"))

	var out bytes.Buffer
	err := run(t, testDeps(&out, svc), "apply", writePlan(t, applyPlan))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upload failed")
}

func TestApplyCommand_BadPlan(t *testing.T) {
	var out bytes.Buffer
	err := run(t, testDeps(&out, &sync.ServiceMock{}), "apply", writePlan(t, "nonsense: [1]\n"))
	require.Error(t, err)

	err = run(t, testDeps(&out, &sync.ServiceMock{}), "apply")
	assert.Error(t, err)
}
