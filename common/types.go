package common

type LocalMsgType uint32

func (lt *LocalMsgType) Type() LocalMsgType {
	return (*lt) & (0xff00)
}

// |--type--|-subtype-|
// 0000 0000 0000 0000
const (
	LocalTrainMsg       LocalMsgType = 1 << 8
	LocalTrainMsg_Epoch LocalMsgType = LocalTrainMsg | 1
	LocalTrainMsg_Done  LocalMsgType = LocalTrainMsg | 2
	LocalPlotMsg        LocalMsgType = 2 << 8
	LocalPlotMsg_Saved  LocalMsgType = LocalPlotMsg | 1
)
