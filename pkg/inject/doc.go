// Package inject attaches cached artifacts to execution environments.
//
// # Targets
//
// A [Target] is anything with a search path that can grow by one local file
// at a time. The package ships several:
//
//   - [SearchPath]: an in-memory ordered list, rendered as a classpath
//   - [EnvTarget]: a list-valued environment variable such as CLASSPATH
//   - [PluginTarget]: Go plugins opened into the running process
//   - [TargetFunc]: any function
//
// Targets are passed in explicitly; nothing is discovered globally.
//
// # Injection
//
// [Inject] appends one local file. An [Injector] combines it with a
// [cache.Store]:
//
//	injector := inject.NewInjector(cache.NewStore("", nil), logger)
//
//	var cp inject.SearchPath
//	err := injector.InjectNotation(ctx, "org.apache.commons:commons-lang3:3.14.0", &cp)
//
// [Injector.InjectDependencies] processes a batch in order and stops at the
// first failure. Nothing already appended is rolled back.
//
// [cache.Store]: github.com/matzehuels/depinject/pkg/cache
package inject
