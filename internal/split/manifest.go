package split

// Manifest carries the boilerplate facts the generator needs to emit a
// compilable module for one destination: which collaborator client the
// module's tools call, the constructor that builds it, and the config
// section the constructor reads. The engine never validates those facts;
// it only emits the call shape the collaborator's contract expects.
type Manifest struct {
	Collaborator string `yaml:"collaborator"`
	Constructor  string `yaml:"constructor"`
	ConfigKey    string `yaml:"config_key"`
}

// DefaultManifests returns the built-in manifest table for the six
// platform services, matching DefaultRules destinations.
func DefaultManifests() map[string]Manifest {
	return map[string]Manifest{
		"entities":  {Collaborator: "EntitiesClient", Constructor: "createEntitiesClient", ConfigKey: "entities"},
		"workitems": {Collaborator: "WorkItemsClient", Constructor: "createWorkItemsClient", ConfigKey: "workitems"},
		"repos":     {Collaborator: "ReposClient", Constructor: "createReposClient", ConfigKey: "repos"},
		"telemetry": {Collaborator: "TelemetryClient", Constructor: "createTelemetryClient", ConfigKey: "telemetry"},
		"sqlmeta":   {Collaborator: "SqlMetaClient", Constructor: "createSqlMetaClient", ConfigKey: "sqlmeta"},
		"files":     {Collaborator: "FilesClient", Constructor: "createFilesClient", ConfigKey: "files"},
	}
}
