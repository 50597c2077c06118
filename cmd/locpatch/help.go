package main

const (
	rootHelpShort = "locpatch customizes a game's localization strings across patches."

	rootHelpLong = `locpatch customizes a game's localization strings across patches.

It merges user-authored text replacements (an override file in the same flat
key=value format as the game's global.ini) into the vendor string table, caches
extracted tables per build version, and diffs versions to detect when a game
patch adds, removes or changes keys - flagging changes that collide with the
user's customizations. It supports these commands:

  merge    - apply the override file onto a base table and write the result
  diff     - compare two table versions and cross-reference the overrides
  extract  - unpack the current global.ini from the game and cache it
  patch    - full update workflow: detect build, extract, diff, optionally write
  add      - append keys from a base table to the override file
  list     - list the keys of a table file, sorted or in file order
  archive  - pack all cached snapshots into a tar.gz
  settings - show or change the tool configuration

All commands print their primary results (key listings, diff lines, orphaned
overrides) to standard output (stdout). Any encountered errors and operational
messages are printed to standard error (stderr). Soft findings such as conflicts
or orphaned overrides are reported but never fail the run.

Exit Codes:
  0 - Success
  1 - General failure (missing input files, I/O errors, etc.)

For detailed help on a specific command, run:
  locpatch help <command>`

	mergeHelpShort = "Merge the override file into a base table"

	mergeHelpLong = `Merge the override file into a base table and write the result.

The command walks <base.ini> line by line and replaces the value of every key
the override file customizes, leaving all other lines - including comments,
blank lines and unparseable text - untouched at their exact positions. The
output is written with the UTF-8 byte-order mark the game requires.

Override keys that no longer exist in the base table are printed to standard
output (stdout) as orphans, prefixed with "???"; they do not fail the run. The
command returns with an exit code 0 in case of success; an exit code 1 when a
required input file is missing or the output cannot be written. No partial
output file is left behind on failure.`

	mergeExample = `
# Merge user overrides into an extracted table:
locpatch merge cache/sc-alpha-4.0-LIVE.ini target_strings.ini global.ini`

	diffHelpShort = "Compare two table versions and cross-reference the overrides"

	diffHelpLong = `Compare two versions of a base table, key by key.

Every key is classified as added, removed or changed between <old.ini> and
<new.ini>. When --overrides is given, the override file is cross-referenced:
changed keys the user customizes are flagged as conflicts, removed keys with an
override as orphaned customizations. Report lines go to standard output
(stdout), one per key, in the source tables' own order:

  +++ key   added upstream
  --- key   removed upstream
  ~~~ key   changed upstream
  !!! key   changed upstream while overridden (conflict)
  ??? key   removed upstream while overridden (orphaned)

Keys matching an --exclude glob are dropped from consideration on both sides.
Conflicts and orphans are soft findings; the command returns with an exit code
0 whether or not differences were found, and an exit code 1 only for errors.`

	diffExample = `
# Compare two cached snapshots against the user's overrides:
locpatch diff cache/4.0-LIVE.ini cache/4.1-LIVE.ini --overrides target_strings.ini

# Ignore volatile key families while comparing:
locpatch diff old.ini new.ini --exclude 'ui_debug_*' --exclude 'test_*'`

	extractHelpShort = "Unpack the current global.ini from the game and cache it"

	extractHelpLong = `Unpack the current localization table out of the game's Data.p4k.

The configured unp4k utility is invoked on the environment's Data.p4k with a
filter for global.ini; the extracted table is stored in the snapshot cache as
<version>-<environment>.ini. The build version is scraped from the
environment's Game.log unless --version is given; characters unsafe for
filenames are replaced with underscores.

A non-zero exit code of the unpacking utility aborts the command and nothing
is cached. The command returns with an exit code 0 upon success; an exit code
1 for any encountered errors.`

	extractExample = `
# Extract and cache the current LIVE table:
locpatch extract --env LIVE

# Extract under an explicit version label:
locpatch extract --env PTU --version 4.2-ptu-rc1`

	patchHelpShort = "Run the full update workflow for the current game build"

	patchHelpLong = `Run the full update workflow.

The command determines the environment's current build version from Game.log,
extracts and caches its table if this build has not been seen before, and
compares it against the previous cached snapshot with the override file
cross-referenced, printing the same report as 'diff'. When autoWrite is
enabled in the configuration, the overrides are merged into the game's
localization directory and user.cfg is converged on the configured language.

Conflicts and orphaned overrides are reported but do not fail the run. A
failing extraction aborts the workflow before anything is written to the game
directory.`

	patchExample = `
# Check the current build and report upstream changes:
locpatch patch

# Update a specific environment with its own override file:
locpatch patch --env PTU --overrides ptu_strings.ini`

	addHelpShort = "Append keys from a base table to the override file"

	addHelpLong = `Append keys to the override file, seeded from a base table.

For every given key, the key's current value is looked up in <base.ini> and
appended to the override file as a "; @original=<value>" comment followed by
"<key>=<value>", ready to be hand-edited. The value recorded in the comment
lets later diffs detect upstream changes to the key.

Keys that do not exist in the base table fail the command before anything is
written; keys already present in the override file are skipped with a note.
The override file is created without a byte-order mark, as it is hand-edited.`

	addExample = `
# Start customizing two keys:
locpatch add cache/4.0-LIVE.ini target_strings.ini ui_pu_hello mobiGlas_label`

	listHelpShort = "List the keys of a table file (sorted by default)"

	listHelpLong = `List every key of a table file, either sorted or in file order.

By default, the keys are sorted alphabetically, which improves readability and
makes it easier to 'diff' or otherwise compare. --sort=false preserves the
file's own order, if that would otherwise be needed. Sorting streams through
an external sorter, scaling to very large tables while preserving system
resources; for such tables a specific on-disk temporary file location can be
set with --tmpdir <path>.

All listed keys are printed to standard output (stdout), while any operational
output and encountered errors will be written to standard error (stderr). The
command returns with an exit code 0 upon success; an exit code 1 for errors.`

	listExample = `
# List as sorted the keys of a cached snapshot:
locpatch list cache/4.0-LIVE.ini

# Preserve the file order and skip a key family:
locpatch list cache/4.0-LIVE.ini --sort=false --exclude 'vehicle_*'`

	archiveHelpShort = "Pack all cached snapshots into a tar.gz"

	archiveHelpLong = `Pack every cached snapshot into a single tar.gz archive.

Snapshots are stored with their real content and modification times, so an
unpacked archive is directly usable as a snapshot cache again. Archived names
are printed to standard output (stdout). The command fails when the snapshot
cache is empty; on failure the partial output file is removed.`

	archiveExample = `
# Back up the snapshot cache:
locpatch archive snapshots.tar.gz

# Archive a non-default cache location:
locpatch archive snapshots.tar.gz --cache /mnt/backup/cache`

	settingsHelpShort = "Show or change the tool configuration"

	settingsHelpLong = `Show the current configuration, optionally changing fields first.

Each --set field=value is applied in order and the file is saved; without
--set the configuration is only printed. Recognized fields are
gameInstallPath, environments (comma-separated), language, unp4kPath,
lastBuildVersion and autoWrite. Fields in the file that this version does not
recognize are preserved unchanged across saves.`

	settingsExample = `
# Show the current configuration:
locpatch settings

# Point the tool at the game and enable automatic writing:
locpatch settings --set gameInstallPath='C:\Games\StarCitizen' --set autoWrite=true`
)
