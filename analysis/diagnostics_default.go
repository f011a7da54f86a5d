package analysis

var DefaultDiagnostics = []Diagnostics{
	DiagnosticsBraces{},
	DiagnosticsStrings{},
	DiagnosticsWorkspace{},
	DiagnosticsIdentifiers{},
	DiagnosticsPlacement{},
	DiagnosticsRelationships{},
	DiagnosticsViewScopes{},
	DiagnosticsContext{},
	DiagnosticsKeywords{},
	DiagnosticsSyntax{},
}
