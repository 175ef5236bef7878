package command

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Commander[RedeemEntitlementsMessage]         = (*RedeemEntitlementsCommand)(nil)
	_ gocmd.Commander[ConsumeBooleanEntitlementsMessage] = (*ConsumeBooleanEntitlementsCommand)(nil)
)
