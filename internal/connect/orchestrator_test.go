package connect_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/muurk/adb-autoconnect/internal/adb"
	"github.com/muurk/adb-autoconnect/internal/adb/adbtest"
	"github.com/muurk/adb-autoconnect/internal/address"
	"github.com/muurk/adb-autoconnect/internal/connect"
	"github.com/muurk/adb-autoconnect/internal/session"
)

var (
	targetA = address.MustParse("10.0.0.1:5555")
	targetB = address.MustParse("10.0.0.2:5555")
	targetC = address.MustParse("10.0.0.3:5555")
)

// recorder captures observer callbacks in order.
type recorder struct {
	events []string
}

func (r *recorder) Connecting(target address.Address) {
	r.events = append(r.events, "connecting "+target.String())
}

func (r *recorder) Finished(o connect.Outcome) {
	r.events = append(r.events, "finished "+o.Target.String()+" "+o.Kind.String())
}

// mixedRunner scripts A: connect fails, B: connect ok but offline, C: ok.
// The devices listings are consumed by: A check, B check, B verify,
// C check, C verify.
func mixedRunner() *adbtest.Runner {
	return adbtest.NewRunner().
		On("devices",
			adbtest.Stdout("List of devices attached\n"),
			adbtest.Stdout("List of devices attached\n"),
			adbtest.Stdout("10.0.0.2:5555\toffline\n"),
			adbtest.Stdout("10.0.0.2:5555\toffline\n"),
			adbtest.Stdout("10.0.0.2:5555\toffline\n10.0.0.3:5555\tdevice\n"),
		).
		On("connect 10.0.0.1:5555", adbtest.Exit(1, "failed to connect to '10.0.0.1:5555': Connection refused")).
		On("connect 10.0.0.2:5555", adbtest.Stdout("connected to 10.0.0.2:5555")).
		On("connect 10.0.0.3:5555", adbtest.Stdout("connected to 10.0.0.3:5555"))
}

func newOrchestrator(runner *adbtest.Runner, obs connect.Observer) *connect.Orchestrator {
	client := adb.NewClient(runner, zap.NewNop())
	manager := session.NewManager(client, zap.NewNop())
	return connect.NewOrchestrator(client, manager, obs, zap.NewNop())
}

func TestConnectFirst_FailsOverToThirdTarget(t *testing.T) {
	runner := mixedRunner()
	rec := &recorder{}

	winner, outcomes, err := newOrchestrator(runner, rec).
		ConnectFirst(context.Background(), []address.Address{targetA, targetB, targetC})
	require.NoError(t, err)

	assert.Equal(t, targetC, winner.Target)
	assert.Equal(t, connect.KindConnected, winner.Kind)
	assert.Equal(t, "connected to 10.0.0.3:5555", winner.Message)

	assert.Equal(t, []string{
		"connect 10.0.0.1:5555",
		"connect 10.0.0.2:5555",
		"connect 10.0.0.3:5555",
	}, runner.CallsWithPrefix("connect"))

	require.Len(t, outcomes, 3)
	assert.Equal(t, connect.KindConnectFailed, outcomes[0].Kind)
	assert.Equal(t, connect.KindUnverified, outcomes[1].Kind)
	assert.Equal(t, connect.UnverifiedMessage, outcomes[1].Message)

	assert.Equal(t, []string{
		"connecting 10.0.0.1:5555",
		"finished 10.0.0.1:5555 connect-failed",
		"connecting 10.0.0.2:5555",
		"finished 10.0.0.2:5555 unverified",
		"connecting 10.0.0.3:5555",
		"finished 10.0.0.3:5555 connected",
	}, rec.events)
}

func TestConnectFirst_StopsAtFirstSuccess(t *testing.T) {
	runner := adbtest.NewRunner().
		On("devices",
			adbtest.Stdout(""),
			adbtest.Stdout("10.0.0.1:5555\tdevice\n"),
		).
		On("connect 10.0.0.1:5555", adbtest.Stdout("connected to 10.0.0.1:5555"))

	winner, outcomes, err := newOrchestrator(runner, nil).
		ConnectFirst(context.Background(), []address.Address{targetA, targetB})
	require.NoError(t, err)

	assert.Equal(t, targetA, winner.Target)
	assert.Len(t, outcomes, 1)
	assert.Equal(t, []string{"connect 10.0.0.1:5555"}, runner.CallsWithPrefix("connect"))
}

func TestConnectFirst_AlreadyConnectedShortCircuits(t *testing.T) {
	runner := adbtest.NewRunner().
		On("devices", adbtest.Stdout("10.0.0.1:5555\tdevice\n"))

	winner, _, err := newOrchestrator(runner, nil).
		ConnectFirst(context.Background(), []address.Address{targetA, targetB})
	require.NoError(t, err)

	assert.Equal(t, connect.KindAlreadyConnected, winner.Kind)
	assert.True(t, winner.Succeeded())
	assert.Empty(t, runner.CallsWithPrefix("connect"))
}

func TestConnectFirst_AllFail(t *testing.T) {
	runner := adbtest.NewRunner().
		On("connect 10.0.0.1:5555", adbtest.Exit(1, "")).
		On("connect 10.0.0.2:5555", adbtest.Exit(1, "unable to connect"))

	_, outcomes, err := newOrchestrator(runner, nil).
		ConnectFirst(context.Background(), []address.Address{targetA, targetB})

	require.Error(t, err)
	assert.ErrorIs(t, err, connect.ErrNoTargetConnected)
	assert.Contains(t, err.Error(), "all targets")
	require.Len(t, outcomes, 2)
	assert.Equal(t, "Failed to connect to 10.0.0.1:5555", outcomes[0].Message)
	assert.Equal(t, "unable to connect", outcomes[1].Message)
}

func TestConnectFirst_TimedOutTargetFailsOver(t *testing.T) {
	timeout := &adb.TimeoutError{Args: []string{"connect", "10.0.0.1:5555"}, Timeout: "300ms"}
	runner := adbtest.NewRunner().
		On("devices",
			adbtest.Stdout(""),
			adbtest.Stdout(""),
			adbtest.Stdout("10.0.0.2:5555\tdevice\n"),
		).
		On("connect 10.0.0.1:5555", adbtest.Response{Err: timeout}).
		On("connect 10.0.0.2:5555", adbtest.Stdout("connected to 10.0.0.2:5555"))

	winner, outcomes, err := newOrchestrator(runner, nil).
		ConnectFirst(context.Background(), []address.Address{targetA, targetB})
	require.NoError(t, err)

	assert.Equal(t, targetB, winner.Target)
	assert.Equal(t, connect.KindConnected, winner.Kind)
	require.Len(t, outcomes, 2)
	assert.Equal(t, connect.KindConnectFailed, outcomes[0].Kind)
	assert.Contains(t, outcomes[0].Message, "timed out after 300ms")
}

func TestConnectAll_TimedOutTargetIsNotFatal(t *testing.T) {
	timeout := &adb.TimeoutError{Args: []string{"connect", "10.0.0.1:5555"}, Timeout: "300ms"}
	runner := adbtest.NewRunner().
		On("devices",
			adbtest.Stdout(""),
			adbtest.Stdout(""),
			adbtest.Stdout("10.0.0.2:5555\tdevice\n"),
		).
		On("connect 10.0.0.1:5555", adbtest.Response{Err: timeout}).
		On("connect 10.0.0.2:5555", adbtest.Stdout("connected to 10.0.0.2:5555"))

	outcomes, err := newOrchestrator(runner, nil).
		ConnectAll(context.Background(), []address.Address{targetA, targetB})
	require.NoError(t, err)

	require.Len(t, outcomes, 2)
	assert.Equal(t, connect.KindConnectFailed, outcomes[0].Kind)
	assert.Equal(t, connect.KindConnected, outcomes[1].Kind)
}

func TestConnectFirst_TimedOutVerifyIsUnverified(t *testing.T) {
	timeout := &adb.TimeoutError{Args: []string{"devices"}, Timeout: "300ms"}
	// Listings: A check, A verify (times out), B check, B verify.
	runner := adbtest.NewRunner().
		On("devices",
			adbtest.Stdout(""),
			adbtest.Response{Err: timeout},
			adbtest.Stdout(""),
			adbtest.Stdout("10.0.0.2:5555\tdevice\n"),
		).
		On("connect 10.0.0.1:5555", adbtest.Stdout("connected to 10.0.0.1:5555")).
		On("connect 10.0.0.2:5555", adbtest.Stdout("connected to 10.0.0.2:5555"))

	winner, outcomes, err := newOrchestrator(runner, nil).
		ConnectFirst(context.Background(), []address.Address{targetA, targetB})
	require.NoError(t, err)

	assert.Equal(t, targetB, winner.Target)
	require.Len(t, outcomes, 2)
	assert.Equal(t, connect.KindUnverified, outcomes[0].Kind)
}

func TestConnectFirst_EmptyTargets(t *testing.T) {
	_, outcomes, err := newOrchestrator(adbtest.NewRunner(), nil).
		ConnectFirst(context.Background(), nil)

	assert.ErrorIs(t, err, connect.ErrNoTargetConnected)
	assert.Empty(t, outcomes)
}

func TestConnectAll_RecordsEveryTarget(t *testing.T) {
	runner := mixedRunner()

	outcomes, err := newOrchestrator(runner, nil).
		ConnectAll(context.Background(), []address.Address{targetA, targetB, targetC})
	require.NoError(t, err)

	require.Len(t, outcomes, 3)
	assert.Equal(t, connect.KindConnectFailed, outcomes[0].Kind)
	assert.False(t, outcomes[0].Succeeded())
	assert.Equal(t, connect.KindUnverified, outcomes[1].Kind)
	assert.False(t, outcomes[1].Succeeded())
	assert.Equal(t, connect.KindConnected, outcomes[2].Kind)
	assert.True(t, outcomes[2].Succeeded())

	assert.Len(t, runner.CallsWithPrefix("connect"), 3)
}

func TestConnectAll_SkipsAlreadyConnected(t *testing.T) {
	runner := adbtest.NewRunner().
		On("devices", adbtest.Stdout("10.0.0.1:5555\tdevice\n10.0.0.2:5555\tdevice\n"))

	outcomes, err := newOrchestrator(runner, nil).
		ConnectAll(context.Background(), []address.Address{targetA, targetB})
	require.NoError(t, err)

	require.Len(t, outcomes, 2)
	for _, o := range outcomes {
		assert.Equal(t, connect.KindAlreadyConnected, o.Kind)
	}
	assert.Empty(t, runner.CallsWithPrefix("connect"))
}

func TestConnectAll_RunnerErrorAborts(t *testing.T) {
	boom := errors.New("adb vanished")
	runner := adbtest.NewRunner().
		On("connect 10.0.0.2:5555", adbtest.Response{Err: boom})

	outcomes, err := newOrchestrator(runner, nil).
		ConnectAll(context.Background(), []address.Address{targetA, targetB, targetC})

	assert.ErrorIs(t, err, boom)
	assert.Len(t, outcomes, 1, "outcomes gathered before the fault are returned")
}

func TestOutcome_String(t *testing.T) {
	o := connect.Outcome{Target: targetA, Kind: connect.KindConnected}
	assert.Equal(t, "10.0.0.1:5555: connected", o.String())

	o.Message = "connected to 10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1:5555: connected (connected to 10.0.0.1:5555)", o.String())

	assert.Equal(t, "Kind(42)", connect.Kind(42).String())
}
