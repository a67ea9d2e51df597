package node

import (
	"fmt"

	"sgdlr/common"
	"sgdlr/core/config"
	"sgdlr/core/dataset"
	"sgdlr/core/ml"
	"sgdlr/core/msgbus"
	"sgdlr/core/plot"
)

// progressLogger logs trainer and plotter events from the message bus.
type progressLogger struct {
	log      common.Logger
	interval int
}

func (p *progressLogger) HandleMsgFromMsgBus(msg *msgbus.BusMessage) error {
	switch msg.MsgType {
	case common.LocalTrainMsg_Epoch:
		e, ok := msg.Msg.(ml.EpochEvent)
		if !ok {
			return fmt.Errorf("unexpected epoch payload %T", msg.Msg)
		}
		if p.interval > 0 && e.Epoch%p.interval == 0 {
			p.log.Debugf("epoch %d, weight: %v, bias: %v", e.Epoch, e.Model.Weight, e.Model.Bias)
		}
	case common.LocalTrainMsg_Done:
		p.log.Debugf("training finished: %+v", msg.Msg)
	case common.LocalPlotMsg_Saved:
		p.log.Infof("figure written: %v", msg.Msg)
	}
	return nil
}

type Result struct {
	Model    ml.Model
	Accuracy float64
	Output   string
}

// Pipeline runs dataset construction, training and plotting once, in order.
type Pipeline struct {
	conf    *config.LocalConfig
	log     common.Logger
	trainer *ml.Trainer
}

func (n *Pipeline) Init(c *config.LocalConfig) error {
	n.conf = c

	logConfig, err := c.LogConfig()
	if err != nil {
		return fmt.Errorf("get log config err: %s", err)
	}
	common.SetLogConfig(logConfig)
	n.log = common.GetLogger(common.MODULE_NODE)

	// the bus must exist before any component publishes to it
	bus := msgbus.InitMessageBus()
	progress := &progressLogger{log: n.log, interval: 50}
	msgbus.Register(common.LocalTrainMsg, progress)
	msgbus.Register(common.LocalPlotMsg, progress)

	n.trainer = ml.NewTrainer(c.Train.Epochs)
	n.trainer.Pub = bus
	n.trainer.Log = common.GetLogger(common.MODULE_TRAINER)
	return nil
}

// Train builds the dataset and fits the model without drawing anything.
func (n *Pipeline) Train() (*Result, error) {
	_, res, err := n.train()
	return res, err
}

func (n *Pipeline) train() (*dataset.SampleSet, *Result, error) {
	if n.trainer == nil {
		return nil, nil, fmt.Errorf("pipeline not initialized")
	}
	ss := dataset.Build()
	common.GetLogger(common.MODULE_DATASET).Infof("dataset built, %d samples", ss.Len())

	m := n.trainer.Train(ss, n.conf.InitModel())
	return ss, &Result{Model: m, Accuracy: ml.Accuracy(ss, m)}, nil
}

// Run executes the whole pipeline and writes the figure.
func (n *Pipeline) Run() (*Result, error) {
	ss, res, err := n.train()
	if err != nil {
		return nil, err
	}
	n.log.Infof("model weight: %v, bias: %v, training accuracy: %.3f",
		res.Model.Weight, res.Model.Bias, res.Accuracy)

	pc := n.conf.PlotConfig()
	if err = plot.Render(ss, res.Model, pc); err != nil {
		return nil, fmt.Errorf("render plot err: %s", err)
	}
	msgbus.Publish(common.LocalPlotMsg_Saved, pc.Output)
	res.Output = pc.Output
	return res, nil
}

// Close drains pending progress messages and flushes the loggers.
func (n *Pipeline) Close() {
	if n.trainer == nil {
		return
	}
	msgbus.Reset()
	// stdout cannot be fsynced on every platform
	_ = common.SyncLoggers()
}
