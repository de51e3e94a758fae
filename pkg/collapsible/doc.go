/*
Package collapsible migrates the deprecated collapsible section pattern into the
unified CollapsibleHeader component.

	+--------------------+      +-----------+      +-----------+
	| <CollapsibleSection|      |  Scanner  |      | Extractor |
	|  HeaderButton      | ---> | (tag depth| ---> |  (title)  |
	|  {gate && Content} |      |  tracking)|      +-----+-----+
	+--------------------+      +-----------+            |
	                                                     v
	+--------------------+      +-----------+      +-----------+
	|  <CollapsibleHeader| <--- | Rebuilder | <--- | Classifier|
	|   title icon theme>|      |           |      | (rules)   |
	+---------+----------+      +-----------+      +-----------+
	          |
	          v
	+--------------------+
	|  Import Normalizer |
	+--------------------+

🎯 Purpose:
- Locate every wrapper / header control / gated content triple without a parse tree
- Pick an icon and theme for each block from its title
- Rebuild the block as one component, keeping the inner content verbatim
- Declare the component and icon bindings exactly once

⚡ Guarantees:
- Blocks never overlap, scanning is deterministic
- Unparsed blocks are left byte-identical and reported as warnings
- Migrating already-migrated text is a no-op

🔍 Example:

	m, err := collapsible.New(collapsible.Options{})
	if err != nil {
		return err
	}
	res, err := m.Migrate(ctx, string(source))
	if err != nil {
		return err
	}
	fmt.Printf("converted %d/%d blocks\n", res.Converted, res.Found)
*/
package collapsible
