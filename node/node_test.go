package node

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sgdlr/common"
	"sgdlr/core/config"
	"sgdlr/core/ml"
	"sgdlr/core/msgbus"
	"sgdlr/test/mock"
)

func testConfig(t *testing.T) *config.LocalConfig {
	return &config.LocalConfig{
		Train: config.TrainConfig{Epochs: ml.DefaultEpochs, Weight: []float64{1, 0}},
		Plot: config.PlotConfig{
			Output: filepath.Join(t.TempDir(), "picture.png"),
			Width:  4,
			Height: 4,
			LineX:  []float64{0, 12},
		},
		Log: config.LogConf{Level: "ERROR", LogInConsole: true},
	}
}

func TestPipelineRun(t *testing.T) {
	c := testConfig(t)
	n := &Pipeline{}
	require.NoError(t, n.Init(c))
	defer n.Close()

	res, err := n.Run()
	require.NoError(t, err)
	assert.Equal(t, c.Plot.Output, res.Output)
	assert.Equal(t, 1.0, res.Accuracy)

	info, err := os.Stat(res.Output)
	require.NoError(t, err)
	assert.True(t, info.Size() > 0)

	x1 := (-res.Model.Weight[1]*5 - res.Model.Bias) / res.Model.Weight[0]
	assert.True(t, x1 > 6 && x1 < 7, "crossing at x1=%v", x1)
}

func TestPipelineTrain(t *testing.T) {
	c := testConfig(t)
	n := &Pipeline{}
	require.NoError(t, n.Init(c))
	defer n.Close()

	res, err := n.Train()
	require.NoError(t, err)
	assert.Equal(t, "", res.Output)
	_, err = os.Stat(c.Plot.Output)
	assert.True(t, os.IsNotExist(err))
}

func TestPipelineErrors(t *testing.T) {
	_, err := (&Pipeline{}).Train()
	assert.Error(t, err)

	c := testConfig(t)
	c.Log.Level = "LOUD"
	assert.Error(t, (&Pipeline{}).Init(c))

	c = testConfig(t)
	c.Train.Weight = []float64{1, 0}
	c.Train.Epochs = 0
	n := &Pipeline{}
	require.NoError(t, n.Init(c))
	defer n.Close()
	// an untrained model has w1 == 0 and no drawable boundary
	_, err = n.Run()
	assert.Error(t, err)
}

func TestProgressLogger(t *testing.T) {
	p := &progressLogger{log: &mock.MockLog{Name: common.MODULE_NODE}, interval: 1}
	assert.NoError(t, p.HandleMsgFromMsgBus(&msgbus.BusMessage{
		MsgType: common.LocalTrainMsg_Epoch,
		Msg:     ml.EpochEvent{Epoch: 1, Model: ml.DefaultModel()},
	}))
	assert.Error(t, p.HandleMsgFromMsgBus(&msgbus.BusMessage{
		MsgType: common.LocalTrainMsg_Epoch,
		Msg:     "epoch",
	}))
	assert.NoError(t, p.HandleMsgFromMsgBus(&msgbus.BusMessage{
		MsgType: common.LocalPlotMsg_Saved,
		Msg:     "picture.png",
	}))
}

type epochCounter struct {
	mutex sync.Mutex
	count map[common.LocalMsgType]int
}

func (c *epochCounter) HandleMsgFromMsgBus(msg *msgbus.BusMessage) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.count[msg.MsgType]++
	return nil
}

func TestPipelinePublishesOnSharedBus(t *testing.T) {
	c := testConfig(t)
	n := &Pipeline{}
	require.NoError(t, n.Init(c))

	counter := &epochCounter{count: make(map[common.LocalMsgType]int)}
	msgbus.Register(common.LocalTrainMsg, counter)
	msgbus.Register(common.LocalPlotMsg, counter)

	_, err := n.Run()
	require.NoError(t, err)
	n.Close()
	n.Close()

	assert.Equal(t, ml.DefaultEpochs, counter.count[common.LocalTrainMsg_Epoch])
	assert.Equal(t, 1, counter.count[common.LocalTrainMsg_Done])
	assert.Equal(t, 1, counter.count[common.LocalPlotMsg_Saved])

	// a closed pipeline leaves no topics behind
	msgbus.Publish(common.LocalTrainMsg_Epoch, ml.EpochEvent{})
	msgbus.Reset()
	assert.Equal(t, ml.DefaultEpochs, counter.count[common.LocalTrainMsg_Epoch])
}
