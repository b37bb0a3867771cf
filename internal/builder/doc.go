/*
Package builder turns one resolved target definition into a rooted
compilation graph. It acts as the bridge between the static configuration
model (the 'config' package) and the build drivers (the 'executor' package).

Construction is a three-phase process:

 1. Source Resolution: every source glob is expanded relative to the project
    home, recursively ("**" crosses directories). Only regular files are kept.
    Matches of one glob are sorted; the union keeps first-seen order and drops
    duplicates. A target that resolves to nothing is rejected with a
    *NoSourcesError before any node exists.

 2. Object and Archive Nodes: each source becomes an object node whose
    destination is computed by the 'layout' package from the package
    identity, the target name and the source path relative to home. All
    objects are attached to one archive node.

 3. Root Selection: a library's root is its archive. An executable wraps the
    archive in an executable node placed in the project home.

Include directories are resolved against the home so that toolchain commands
do not depend on the working directory of the process.
*/
package builder
