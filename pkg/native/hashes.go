package native

// Native hashes used by the plugin.
const (
	// player and entities
	PlayerPedID            Hash = 0xD80958FC74E988A6
	GetEntityCoords        Hash = 0x3FEF770D40960D5A
	GetEntityModel         Hash = 0x9F47B058362C84B5
	DoesEntityExist        Hash = 0x7239B21A38F536BA
	GetPedType             Hash = 0xFF059E1E4C01E63C
	IsPedInAnyVehicle      Hash = 0x997ABD671D25CA0B
	IsPedInAnyTaxi         Hash = 0x6E575D6A898AB852
	GetVehiclePedIsIn      Hash = 0x9A9112A0FE9A4713
	GetEntityBoneIndex     Hash = 0xFB71170B7E76ACBA // GET_ENTITY_BONE_INDEX_BY_NAME
	GetWorldPositionOfBone Hash = 0x44A8FCB8ED227738 // GET_WORLD_POSITION_OF_ENTITY_BONE

	// model classification
	IsThisModelACar     Hash = 0x7F6DB52EEFC96DF8
	IsThisModelABoat    Hash = 0x45A9187928F4B9E3
	IsThisModelAPlane   Hash = 0xA0948AB42D7BA0DE
	IsThisModelAHeli    Hash = 0xDCE4334788AF94EA
	IsThisModelABike    Hash = 0xB50C0B0CEDC6CE84
	IsThisModelABicycle Hash = 0xBF94DD42F63BDED2

	// world queries
	GetClosestObjectOfType Hash = 0xE143FA2249364369
	GetClosestVehicle      Hash = 0xF73EB622C4F1689B

	// input
	IsControlJustReleased Hash = 0x50F940259D3841E6

	// text and notifications
	BeginTextCommandDisplayHelp         Hash = 0x8509B634FBE7DA11
	EndTextCommandDisplayHelp           Hash = 0x238FFE5C7B0498A6
	AddTextComponentSubstringPlayerName Hash = 0x6C188BE134E074AA
	BeginTextCommandThefeedPost         Hash = 0x202709F4C58A0424
	EndTextCommandThefeedPostTicker     Hash = 0x2ED7843F8F801023
	EndTextCommandThefeedPostMessage    Hash = 0x1CCD9A37359072CF
	BeginTextCommandDisplayText         Hash = 0x25FBB336DF1804CB
	EndTextCommandDisplayText           Hash = 0xCD015E5BB0D96A57
	SetTextFont                         Hash = 0x66E0276CC5F6B9DA
	SetTextProportional                 Hash = 0x038C1F517D7FDCF8
	SetTextScale                        Hash = 0x07C837F9A01C34C9
	SetTextColour                       Hash = 0xBE6B23FFA53FB442
	SetTextDropshadow                   Hash = 0x465C84BC39F1C351
	SetTextEdge                         Hash = 0x441603240D202FA6
	SetTextDropShadow                   Hash = 0x1CA3E9EAC9D93E5E
	SetTextOutline                      Hash = 0x2513DFB0FB8400FE
	SetTextCentre                       Hash = 0xC02F4DBFB51D988B

	// streaming
	RequestStreamedTextureDict   Hash = 0xDFA2EF8E04127DD5
	HasStreamedTextureDictLoaded Hash = 0x0145F696AAAAD2E4

	// graphics and camera
	DrawMarker      Hash = 0x28477EC23D892089
	DoScreenFadeOut Hash = 0x891B5B39AC6302AF
	DoScreenFadeIn  Hash = 0xD4E8E24955024033

	// stats
	StatGetInt Hash = 0x767FBC2AC802EF3D
	StatSetInt Hash = 0xB3271D7AB655B441

	// vehicles
	CreateVehicle                  Hash = 0xAF35D0D2583051B0
	GetDisplayNameFromVehicleModel Hash = 0xB215AAC32D25D019
	GetVehicleTyresCanBurst        Hash = 0x678B9BB8C3F58FEB
	SetVehicleTyresCanBurst        Hash = 0xEB9DC3C7D8596C46
	SetVehicleTyreBurst            Hash = 0xEC6A202EE4960385
	GetVehicleNumberPlateText      Hash = 0x7CE1CCB9B293020E
	SetVehicleNumberPlateText      Hash = 0x95A88F0B409CDA47
	GetVehicleNumberPlateTextIndex Hash = 0xF11BC2DD9A3E7195
	SetVehicleNumberPlateTextIndex Hash = 0x9088EB5A43FFB0A1
	GetVehicleModVariation         Hash = 0xB3924ECD70E095DC
	GetNumModKits                  Hash = 0x33F2E3FE70EAAE1D
	SetVehicleModKit               Hash = 0x1F2AA07F00B3217A
	GetVehicleMod                  Hash = 0x772960298DA26FDB
	SetVehicleMod                  Hash = 0x6AF0636DDEDCB6DD
	IsToggleModOn                  Hash = 0x84B233A8C8FC8AE7
	ToggleVehicleMod               Hash = 0x2A1F4F37F95BAD08
	GetVehicleWindowTint           Hash = 0x0EE21293DAD47C95
	SetVehicleWindowTint           Hash = 0x57C51E6BAD752696
	GetVehicleTyreSmokeColor       Hash = 0xB635392A4938B3C3
	SetVehicleTyreSmokeColor       Hash = 0xB5BA80F839791C0F
	GetVehicleNeonLightsColour     Hash = 0x7619EEE8C886757F
	SetVehicleNeonLightsColour     Hash = 0x8E0A582209A62695
	IsVehicleNeonLightEnabled      Hash = 0x8C4B92553E4766A5
	SetVehicleNeonLightEnabled     Hash = 0x2AA720E4287BF269
	GetVehicleColours              Hash = 0xA19435F193E081AC
	SetVehicleColours              Hash = 0x4F1D4BE3A7F24601
	GetVehicleExtraColours         Hash = 0x3BC4245933A166F7
	SetVehicleExtraColours         Hash = 0x2036F561ADD12E33
	IsVehicleAConvertible          Hash = 0x52F357A30698BCCE
	GetConvertibleRoofState        Hash = 0xF8C397922FC03F41
	RaiseConvertibleRoof           Hash = 0x8F5FB35D7E88FC70
	LowerConvertibleRoof           Hash = 0xDED51F703D0FA83D
	IsVehicleExtraTurnedOn         Hash = 0xD2E6822DBFD6C8BD
	SetVehicleExtra                Hash = 0x7EE3A3C5E4A40CC9
	GetVehicleLivery               Hash = 0x2BB9230590DA5E8A
	SetVehicleLivery               Hash = 0x60BF608F1B8CD1B6
	SetVehicleNeedsToBeHotwired    Hash = 0xFBA550EA44404EE6
	SetVehicleIsStolen             Hash = 0x67B2C79AA7FF5738
)
