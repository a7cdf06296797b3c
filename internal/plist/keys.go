package plist

// Property-list keys understood by this package. The spelling is what launchd
// expects and must not change.
const (
	KeyLabel                       = "Label"
	KeyProgramArguments            = "ProgramArguments"
	KeyStartInterval               = "StartInterval"
	KeyRunAtLoad                   = "RunAtLoad"
	KeyKeepAlive                   = "KeepAlive"
	KeyStandardOutPath             = "StandardOutPath"
	KeyStandardErrorPath           = "StandardErrorPath"
	KeyWorkingDirectory            = "WorkingDirectory"
	KeyProgram                     = "Program"
	KeyThrottleInterval            = "ThrottleInterval"
	KeyAbandonProcessGroup         = "AbandonProcessGroup"
	KeyEnablePressuredExit         = "EnablePressuredExit"
	KeyEnableTransactions          = "EnableTransactions"
	KeyEventMonitor                = "EventMonitor"
	KeyPOSIXSpawnType              = "POSIXSpawnType"
	KeyAssociatedBundleIdentifiers = "AssociatedBundleIdentifiers"
	KeyLimitLoadToSessionType      = "LimitLoadToSessionType"
	KeyEnvironmentVariables        = "EnvironmentVariables"
)

// CanonicalKeys is the order Encode writes keys in.
var CanonicalKeys = []string{
	KeyLabel,
	KeyProgramArguments,
	KeyStartInterval,
	KeyRunAtLoad,
	KeyKeepAlive,
	KeyStandardOutPath,
	KeyStandardErrorPath,
	KeyWorkingDirectory,
	KeyProgram,
	KeyThrottleInterval,
	KeyAbandonProcessGroup,
	KeyEnablePressuredExit,
	KeyEnableTransactions,
	KeyEventMonitor,
	KeyPOSIXSpawnType,
	KeyAssociatedBundleIdentifiers,
	KeyLimitLoadToSessionType,
	KeyEnvironmentVariables,
}

// valueKind is how a key's value is written in the file.
type valueKind int

const (
	kindUnknown valueKind = iota
	kindString
	kindInteger
	kindBool
	kindStringArray
	kindStringDict
	kindSession
)

var keyKinds = map[string]valueKind{
	KeyLabel:                       kindString,
	KeyProgram:                     kindString,
	KeyStandardOutPath:             kindString,
	KeyStandardErrorPath:           kindString,
	KeyWorkingDirectory:            kindString,
	KeyPOSIXSpawnType:              kindString,
	KeyStartInterval:               kindInteger,
	KeyThrottleInterval:            kindInteger,
	KeyRunAtLoad:                   kindBool,
	KeyKeepAlive:                   kindBool,
	KeyAbandonProcessGroup:         kindBool,
	KeyEnablePressuredExit:         kindBool,
	KeyEnableTransactions:          kindBool,
	KeyEventMonitor:                kindBool,
	KeyProgramArguments:            kindStringArray,
	KeyAssociatedBundleIdentifiers: kindStringArray,
	KeyLimitLoadToSessionType:      kindSession,
	KeyEnvironmentVariables:        kindStringDict,
}

func (d *Document) stringSlot(key string) **string {
	switch key {
	case KeyLabel:
		return &d.Label
	case KeyProgram:
		return &d.Program
	case KeyStandardOutPath:
		return &d.StandardOutPath
	case KeyStandardErrorPath:
		return &d.StandardErrorPath
	case KeyWorkingDirectory:
		return &d.WorkingDirectory
	case KeyPOSIXSpawnType:
		return &d.POSIXSpawnType
	}
	return nil
}

func (d *Document) intSlot(key string) **int {
	switch key {
	case KeyStartInterval:
		return &d.StartInterval
	case KeyThrottleInterval:
		return &d.ThrottleInterval
	}
	return nil
}

func (d *Document) boolSlot(key string) **bool {
	switch key {
	case KeyRunAtLoad:
		return &d.RunAtLoad
	case KeyKeepAlive:
		return &d.KeepAlive
	case KeyAbandonProcessGroup:
		return &d.AbandonProcessGroup
	case KeyEnablePressuredExit:
		return &d.EnablePressuredExit
	case KeyEnableTransactions:
		return &d.EnableTransactions
	case KeyEventMonitor:
		return &d.EventMonitor
	}
	return nil
}

func (d *Document) listSlot(key string) *[]string {
	switch key {
	case KeyProgramArguments:
		return &d.ProgramArguments
	case KeyAssociatedBundleIdentifiers:
		return &d.AssociatedBundleIdentifiers
	}
	return nil
}
