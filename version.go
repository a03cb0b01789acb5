package summaryform

// Version of the summaryform module, printed by the version command.
const Version = "v0.1.0"
