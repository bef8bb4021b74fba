package connection

import "fmt"

// Outcomes of a failed read or write on a session connection.
const (
	ConnLoopBreak uint8 = iota
	ConnLoopRetry
	ConnLoopAbnormalClosureRetry
	ConnLoopContinue
	ConnInvalidMsgType
)

var connLoopNames = map[uint8]string{
	ConnLoopBreak:                "break",
	ConnLoopRetry:                "retry",
	ConnLoopAbnormalClosureRetry: "abnormal closure",
	ConnLoopContinue:             "continue",
	ConnInvalidMsgType:           "invalid message type",
}

type ConnErr struct {
	code uint8
	desc string
}

func NewConnErr(code uint8) ConnErr {
	return ConnErr{code: code}
}

func (c ConnErr) AddDesc(desc string) ConnErr {
	c.desc = desc
	return c
}

func (c ConnErr) Error() string {
	if c.desc == "" {
		return fmt.Sprintf("connection error: %s", connLoopNames[c.code])
	}
	return fmt.Sprintf("connection error: %s\tdesc: %s", connLoopNames[c.code], c.desc)
}

func (c ConnErr) Code() uint8 {
	return c.code
}
