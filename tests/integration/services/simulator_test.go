//go:build integration

package services_test

import (
	"net/http"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trafficsim/pkg/rpc"
	"trafficsim/pkg/simulatorv1"
	"trafficsim/tests/integration/testutil"
)

const envSimulatorAddr = "SIMULATOR_SVC_ADDR"

// simulatorBaseURL возвращает адрес работающего simulator-svc
func simulatorBaseURL(t *testing.T) string {
	t.Helper()
	return "http://" + testutil.RequireService(t, envSimulatorAddr, "localhost:8080")
}

func testCorridor() *simulatorv1.Corridor {
	return &simulatorv1.Corridor{
		Distances: []float64{100, 200, 300},
		Speeds:    []float64{10, 20, 30},
		Volumes:   []float64{30, 60, 90},
	}
}

func TestSimulatorService_CalculateGreenTimes(t *testing.T) {
	base := simulatorBaseURL(t)
	ctx, cancel := testutil.Context(t)
	defer cancel()

	client := connect.NewClient[simulatorv1.CalculateGreenTimesRequest, simulatorv1.CalculateGreenTimesResponse](
		http.DefaultClient, base+simulatorv1.ProcedureCalculateGreenTimes, rpc.ClientOptions()...)

	resp, err := client.CallUnary(ctx, connect.NewRequest(&simulatorv1.CalculateGreenTimesRequest{
		Corridor: testCorridor(),
	}))

	require.NoError(t, err)
	require.Len(t, resp.Msg.GreenTimes, 3)
	assert.InDelta(t, 10, resp.Msg.GreenTimes[0], 1e-9)
	assert.Empty(t, resp.Msg.Warnings)
}

func TestSimulatorService_Simulate(t *testing.T) {
	base := simulatorBaseURL(t)
	ctx, cancel := testutil.Context(t)
	defer cancel()

	client := connect.NewClient[simulatorv1.SimulateRequest, simulatorv1.SimulateResponse](
		http.DefaultClient, base+simulatorv1.ProcedureSimulate, rpc.ClientOptions()...)

	resp, err := client.CallUnary(ctx, connect.NewRequest(&simulatorv1.SimulateRequest{
		Corridor: testCorridor(),
		NoCache:  true,
	}))

	require.NoError(t, err)
	assert.InDelta(t, 10, resp.Msg.Rating, 1e-9)
	assert.Equal(t, "10.00", resp.Msg.RatingDisplay)
	assert.Empty(t, resp.Msg.BadScenarios)
	assert.Len(t, resp.Msg.Flow, 3)
}

func TestSimulatorService_Simulate_Cached(t *testing.T) {
	base := simulatorBaseURL(t)
	ctx, cancel := testutil.Context(t)
	defer cancel()

	client := connect.NewClient[simulatorv1.SimulateRequest, simulatorv1.SimulateResponse](
		http.DefaultClient, base+simulatorv1.ProcedureSimulate, rpc.ClientOptions()...)

	corridor := testCorridor()
	corridor.Emergencies = []int{2}

	first, err := client.CallUnary(ctx, connect.NewRequest(&simulatorv1.SimulateRequest{Corridor: corridor}))
	require.NoError(t, err)

	second, err := client.CallUnary(ctx, connect.NewRequest(&simulatorv1.SimulateRequest{Corridor: corridor}))
	require.NoError(t, err)

	// Второй запрос отдаётся из кэша, если кэширование включено на сервере
	if second.Msg.Cached {
		assert.InDelta(t, first.Msg.Rating, second.Msg.Rating, 1e-9)
		assert.Equal(t, len(first.Msg.BadScenarios), len(second.Msg.BadScenarios))
	}
}

func TestSimulatorService_Simulate_Disruptions(t *testing.T) {
	base := simulatorBaseURL(t)
	ctx, cancel := testutil.Context(t)
	defer cancel()

	client := connect.NewClient[simulatorv1.SimulateRequest, simulatorv1.SimulateResponse](
		http.DefaultClient, base+simulatorv1.ProcedureSimulate, rpc.ClientOptions()...)

	corridor := testCorridor()
	corridor.Emergencies = []int{0}
	corridor.Accidents = []int{1}

	resp, err := client.CallUnary(ctx, connect.NewRequest(&simulatorv1.SimulateRequest{
		Corridor: corridor,
		NoCache:  true,
	}))

	require.NoError(t, err)
	require.Len(t, resp.Msg.BadScenarios, 2)
	assert.Equal(t, "emergency", resp.Msg.BadScenarios[0].Reason)
	assert.Equal(t, "accident", resp.Msg.BadScenarios[1].Reason)
	assert.InDelta(t, 5, resp.Msg.Rating, 1e-9)
}

func TestSimulatorService_Simulate_ValidationError(t *testing.T) {
	base := simulatorBaseURL(t)
	ctx, cancel := testutil.Context(t)
	defer cancel()

	client := connect.NewClient[simulatorv1.SimulateRequest, simulatorv1.SimulateResponse](
		http.DefaultClient, base+simulatorv1.ProcedureSimulate, rpc.ClientOptions()...)

	_, err := client.CallUnary(ctx, connect.NewRequest(&simulatorv1.SimulateRequest{
		Corridor: &simulatorv1.Corridor{
			Distances: []float64{100},
			Speeds:    []float64{10, 20},
			Volumes:   []float64{30},
		},
	}))

	require.Error(t, err)
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
}

func TestSimulatorService_GetStatistics(t *testing.T) {
	base := simulatorBaseURL(t)
	ctx, cancel := testutil.Context(t)
	defer cancel()

	client := connect.NewClient[simulatorv1.GetStatisticsRequest, simulatorv1.GetStatisticsResponse](
		http.DefaultClient, base+simulatorv1.ProcedureGetStatistics, rpc.ClientOptions()...)

	resp, err := client.CallUnary(ctx, connect.NewRequest(&simulatorv1.GetStatisticsRequest{
		Corridor: testCorridor(),
	}))

	require.NoError(t, err)
	require.NotNil(t, resp.Msg.Corridor)
	require.NotNil(t, resp.Msg.Flow)
	assert.Equal(t, 3, resp.Msg.Corridor.SignalCount)
	assert.InDelta(t, 600, resp.Msg.Corridor.TotalDistance, 1e-9)
}

func TestSimulatorService_ListRuns_RequiresAuth(t *testing.T) {
	base := simulatorBaseURL(t)
	ctx, cancel := testutil.Context(t)
	defer cancel()

	client := connect.NewClient[simulatorv1.ListRunsRequest, simulatorv1.ListRunsResponse](
		http.DefaultClient, base+simulatorv1.ProcedureListRuns, rpc.ClientOptions()...)

	_, err := client.CallUnary(ctx, connect.NewRequest(&simulatorv1.ListRunsRequest{Limit: 10}))
	if err == nil {
		t.Skip("auth disabled on target server")
	}
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
}
